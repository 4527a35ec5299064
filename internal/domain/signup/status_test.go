package signup_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/frontendfusion/signup/internal/domain/signup"
)

func TestResultJSON(t *testing.T) {
	Convey("Given the banner contract", t, func() {
		Convey("When nothing was submitted", func() {
			b, err := json.Marshal(signup.Result{})

			Convey("Then status and message should be null", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"status":null,"message":null}`)
			})
		})

		Convey("When the result is an error", func() {
			b, err := json.Marshal(signup.Result{Status: signup.StatusError, Message: signup.FailureMessage})

			Convey("Then both values should be present", func() {
				So(err, ShouldBeNil)
				var got map[string]string
				So(json.Unmarshal(b, &got), ShouldBeNil)
				So(got["status"], ShouldEqual, "error")
				So(got["message"], ShouldEqual, signup.FailureMessage)
			})
		})

		Convey("Then status names should be stable", func() {
			So(signup.StatusNone.String(), ShouldEqual, "none")
			So(signup.StatusSuccess.String(), ShouldEqual, "success")
			So(signup.StatusError.String(), ShouldEqual, "error")
			So(signup.Result{}.Visible(), ShouldBeFalse)
		})
	})
}
