package signup_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/frontendfusion/signup/internal/domain/signup"
)

func TestNewSchema(t *testing.T) {
	Convey("Given vacancy lists", t, func() {
		Convey("When the list has blanks and duplicates", func() {
			s, err := signup.NewSchema([]string{" QA ", "", "QA", "DevOps"})

			Convey("Then they should be cleaned and order kept", func() {
				So(err, ShouldBeNil)
				So(s.Vacancies(), ShouldResemble, []string{"QA", "DevOps"})
			})
		})

		Convey("When the list is empty", func() {
			s, err := signup.NewSchema([]string{" "})

			Convey("Then the schema should be refused", func() {
				So(err, ShouldEqual, signup.ErrNoVacancies)
				So(s, ShouldBeNil)
			})
		})
	})
}

func TestSchemaValidate(t *testing.T) {
	s := mustSchema()

	Convey("Given a fully valid submission", t, func() {
		Convey("Then no errors should be reported", func() {
			So(s.Validate(validData()), ShouldBeNil)
		})
	})

	Convey("Given every combination of missing required fields", t, func() {
		for mask := 1; mask < 1<<len(signup.Fields); mask++ {
			d := validData()
			var missing []string
			for i, f := range signup.Fields {
				if mask&(1<<i) == 0 {
					continue
				}
				missing = append(missing, f)
				switch f {
				case signup.FieldName:
					d.Name = ""
				case signup.FieldLastName:
					d.LastName = ""
				case signup.FieldEmail:
					d.Email = ""
				case signup.FieldPosition:
					d.Position = ""
				case signup.FieldDescription:
					d.Description = ""
				}
			}

			errs := s.Validate(d)
			So(errs.Fields(), ShouldResemble, missing)
			for _, f := range missing {
				So(errs[f], ShouldNotBeBlank)
			}
		}
	})

	Convey("Given malformed emails", t, func() {
		for _, email := range []string{"ana.souza", "ana@", "@example.com", "ana souza@example.com"} {
			d := validData()
			d.Email = email

			errs := s.Validate(d)
			So(errs, ShouldHaveLength, 1)
			So(errs[signup.FieldEmail], ShouldEqual, "Digite um e-mail válido")
		}
	})

	Convey("Given a position outside the vacancy set", t, func() {
		d := validData()
		d.Position = "Astronaut"

		errs := s.Validate(d)

		Convey("Then only the position should be rejected", func() {
			want := signup.FieldErrors{signup.FieldPosition: "Selecione uma vaga válida"}
			So(cmp.Diff(want, errs), ShouldBeEmpty)
		})
	})

	Convey("Given values over the length limits", t, func() {
		d := validData()
		d.Name = strings.Repeat("a", 61)
		d.Description = strings.Repeat("é", 1001)

		errs := s.Validate(d)

		Convey("Then both fields should carry their max message", func() {
			So(errs[signup.FieldName], ShouldContainSubstring, "60")
			So(errs[signup.FieldDescription], ShouldContainSubstring, "1000")
		})

		Convey("And multibyte text at the limit should pass", func() {
			d := validData()
			d.Description = strings.Repeat("é", 1000)
			So(s.Validate(d), ShouldBeNil)
		})
	})
}

func TestSchemaNormalize(t *testing.T) {
	s := mustSchema()

	Convey("Given raw input with padding and markup", t, func() {
		raw := signup.FormData{
			Name:        "  Ana ",
			LastName:    "\tSouza\n",
			Email:       " ana@example.com ",
			Position:    " Backend Developer ",
			Description: ` <b>Tom & Jerry</b> fan, I'm <script>alert(1)</script>here `,
		}

		got := s.Normalize(raw)

		Convey("Then fields should be trimmed and the description stripped to text", func() {
			want := signup.FormData{
				Name:        "Ana",
				LastName:    "Souza",
				Email:       "ana@example.com",
				Position:    "Backend Developer",
				Description: "Tom & Jerry fan, I'm here",
			}
			So(cmp.Diff(want, got), ShouldBeEmpty)
		})
	})

	Convey("Given entity-encoded markup in the description", t, func() {
		cases := map[string]string{
			"&lt;b&gt;oi&lt;/b&gt;":                      "oi",
			"&lt;script&gt;alert(1)&lt;/script&gt;":      "",
			"&amp;lt;i&amp;gt;nested&amp;lt;/i&amp;gt;": "nested",
			"a &lt; b e c &gt; d":                        "a < b e c > d",
		}

		Convey("Then decoded tags should be stripped as well", func() {
			for in, want := range cases {
				got := s.Normalize(signup.FormData{Description: in}).Description
				So(got, ShouldEqual, want)
				So(got, ShouldNotContainSubstring, "<script")
			}
		})
	})

	Convey("Given text with tag-like angle brackets", t, func() {
		got := s.Normalize(signup.FormData{Description: "Uso List<String> no Java"}).Description

		Convey("Then the bracketed word should be dropped like a tag", func() {
			So(got, ShouldEqual, "Uso List no Java")
		})
	})

	Convey("Given whitespace-only fields", t, func() {
		d := s.Normalize(signup.FormData{Name: "   ", Description: "<p> </p>"})

		Convey("Then they should count as missing", func() {
			errs := s.Validate(d)
			So(errs, ShouldContainKey, signup.FieldName)
			So(errs, ShouldContainKey, signup.FieldDescription)
		})
	})
}
