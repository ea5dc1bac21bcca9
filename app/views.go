package app

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/dmitrymomot/schemadeck/internal/registration"
	"github.com/dmitrymomot/schemadeck/internal/slides"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// templates holds one parsed set per page, each layered on layout.html.
type templates struct {
	home  *template.Template
	slide *template.Template
	form  *template.Template
	error *template.Template
}

func loadTemplates() (*templates, error) {
	parse := func(page string) (*template.Template, error) {
		t, err := template.New("layout.html").Funcs(templFuncs()).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		return t, nil
	}

	var (
		t   templates
		err error
	)
	if t.home, err = parse("home.html"); err != nil {
		return nil, err
	}
	if t.slide, err = parse("slide.html"); err != nil {
		return nil, err
	}
	if t.form, err = parse("form.html"); err != nil {
		return nil, err
	}
	if t.error, err = parse("error.html"); err != nil {
		return nil, err
	}
	return &t, nil
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

type navSection struct {
	Label string
	Links []navLink
}

// page wraps the data of every full page with what the layout needs.
type page struct {
	AppName    string
	Title      string
	HtmxSource string
	Nav        []navSection
	Data       any
}

func buildNav(deck *slides.Deck, path string) []navSection {
	link := func(label, href string) navLink {
		return navLink{Label: label, Href: href, Active: href == path}
	}

	presentation := navSection{Label: "Presentation:"}
	for _, l := range deck.Nav() {
		presentation.Links = append(presentation.Links, link(l.Label, l.Href))
	}
	examples := navSection{Label: "Examples:"}
	for _, k := range registration.Kinds {
		examples.Links = append(examples.Links, link(kindLabel(k), formPath(k)))
	}
	return []navSection{presentation, examples}
}

type homeView struct {
	slides.Home
	QR        template.URL
	PublicURL string
}

type slideView struct {
	slides.Slide
	PlaygroundAction string
	PlaygroundInput  string
	Playground       *slides.PlaygroundResult
}

type errorView struct {
	Status  int
	Title   string
	Message string
}

type formField struct {
	Field        registration.Field
	Label        string
	Type         string
	Placeholder  string
	Autocomplete string
	Value        string
	Checked      bool
	Options      []string
	Error        string
	ShowWhen     string
	Trigger      string
}

type formSection struct {
	Heading string
	Fields  []formField
}

type formView struct {
	Kind         registration.Kind
	Highlight    string
	Subtitle     string
	Action       string
	ValidatePath string
	SubmitLabel  string
	Banner       string
	Sections     []formSection
}

func kindLabel(k registration.Kind) string {
	if k == registration.KindSchema {
		return "Schema"
	}
	return "Vanilla"
}

func formPath(k registration.Kind) string {
	return "/form/" + string(k)
}

func kindSubtitle(k registration.Kind) string {
	if k == registration.KindSchema {
		return "Schema-first validation with typed, coerced results"
	}
	return "Hand-written rules with manual error mapping"
}

// newFormView lays out the registration form. Password inputs are never
// echoed back.
func newFormView(k registration.Kind, st *registration.State, banner string) formView {
	v := st.Values()
	errs := st.Errors()

	field := func(f registration.Field, label, typ, placeholder, autocomplete string) formField {
		ff := formField{
			Field:        f,
			Label:        label,
			Type:         typ,
			Placeholder:  placeholder,
			Autocomplete: autocomplete,
			Error:        errs.First(f),
			Trigger:      "blur",
		}
		if typ != "password" {
			ff.Value = v.Get(f)
		}
		return ff
	}

	accountType := field(registration.FieldAccountType, "Account Type *", "select", "Select account type", "")
	accountType.Trigger = "change"
	for _, at := range registration.AccountTypes {
		accountType.Options = append(accountType.Options, string(at))
	}

	company := field(registration.FieldCompanyName, "Company Name *", "text", "ACME Corp", "organization")
	company.ShowWhen = string(registration.AccountBusiness)

	terms := field(registration.FieldTermsAccepted, "I accept the terms and conditions *", "checkbox", "", "")
	terms.Checked = v.TermsAccepted
	terms.Value = ""
	terms.Trigger = "change"

	return formView{
		Kind:         k,
		Highlight:    kindLabel(k),
		Subtitle:     kindSubtitle(k),
		Action:       formPath(k),
		ValidatePath: formPath(k) + "/validate/",
		SubmitLabel:  "Submit Registration (" + kindLabel(k) + ")",
		Banner:       banner,
		Sections: []formSection{
			{
				Heading: "Account Information",
				Fields: []formField{
					field(registration.FieldUsername, "Username *", "text", "john_doe", "username"),
					field(registration.FieldEmail, "Email *", "email", "john@example.com", "email"),
					field(registration.FieldPassword, "Password *", "password", "", "new-password"),
					field(registration.FieldConfirmPassword, "Confirm Password *", "password", "", "new-password"),
					accountType,
					company,
				},
			},
			{
				Heading: "Personal Information",
				Fields: []formField{
					field(registration.FieldAge, "Age *", "number", "25", ""),
					field(registration.FieldWebsite, "Website (Optional)", "url", "https://johndoe.com", "url"),
				},
			},
			{
				Heading: "Agreement",
				Fields:  []formField{terms},
			},
		},
	}
}
