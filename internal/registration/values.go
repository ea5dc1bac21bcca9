package registration

import (
	"slices"
	"strconv"
	"strings"
)

// Field names a registration input. Values match the form input names.
type Field string

const (
	FieldUsername        Field = "username"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldAccountType     Field = "accountType"
	FieldCompanyName     Field = "companyName"
	FieldAge             Field = "age"
	FieldWebsite         Field = "website"
	FieldTermsAccepted   Field = "termsAccepted"
)

// fields lists every field in form order.
var fields = []Field{
	FieldUsername,
	FieldEmail,
	FieldPassword,
	FieldConfirmPassword,
	FieldAccountType,
	FieldCompanyName,
	FieldAge,
	FieldWebsite,
	FieldTermsAccepted,
}

// Fields returns every field in form order.
func Fields() []Field {
	return slices.Clone(fields)
}

// ParseField maps an input name to a Field.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !slices.Contains(fields, f) {
		return "", ErrUnknownField
	}
	return f, nil
}

func (f Field) String() string { return string(f) }

// AccountType is the kind of account being registered.
type AccountType string

const (
	AccountPersonal AccountType = "Personal"
	AccountBusiness AccountType = "Business"
)

// AccountTypes lists the accepted account types in display order.
var AccountTypes = []AccountType{AccountPersonal, AccountBusiness}

// FormValues is the raw snapshot of one registration form. Age stays text
// until validation parses it.
type FormValues struct {
	Username        string `form:"username" json:"username" sanitize:"nfc,no_control"`
	Email           string `form:"email" json:"email" sanitize:"trim,no_control"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
	AccountType     string `form:"accountType" json:"accountType" sanitize:"trim"`
	CompanyName     string `form:"companyName" json:"companyName" sanitize:"strip_html,nfc,single_line,whitespace"`
	Age             string `form:"age" json:"age" sanitize:"trim"`
	Website         string `form:"website" json:"website" sanitize:"trim,no_control"`
	TermsAccepted   bool   `form:"termsAccepted" json:"termsAccepted"`
}

// Get returns the value of f as text. The checkbox reads "true" or "".
func (v FormValues) Get(f Field) string {
	switch f {
	case FieldUsername:
		return v.Username
	case FieldEmail:
		return v.Email
	case FieldPassword:
		return v.Password
	case FieldConfirmPassword:
		return v.ConfirmPassword
	case FieldAccountType:
		return v.AccountType
	case FieldCompanyName:
		return v.CompanyName
	case FieldAge:
		return v.Age
	case FieldWebsite:
		return v.Website
	case FieldTermsAccepted:
		if v.TermsAccepted {
			return "true"
		}
	}
	return ""
}

// set assigns one field. It reports false for unknown fields.
func (v *FormValues) set(f Field, value string) bool {
	switch f {
	case FieldUsername:
		v.Username = value
	case FieldEmail:
		v.Email = value
	case FieldPassword:
		v.Password = value
	case FieldConfirmPassword:
		v.ConfirmPassword = value
	case FieldAccountType:
		v.AccountType = value
	case FieldCompanyName:
		v.CompanyName = value
	case FieldAge:
		v.Age = value
	case FieldWebsite:
		v.Website = value
	case FieldTermsAccepted:
		v.TermsAccepted = checked(value)
	default:
		return false
	}
	return true
}

// checked reports whether a checkbox value means true.
func checked(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "on" || v == "yes" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// Map returns the snapshot keyed by input name.
func (v FormValues) Map() map[string]any {
	return map[string]any{
		string(FieldUsername):        v.Username,
		string(FieldEmail):           v.Email,
		string(FieldPassword):        v.Password,
		string(FieldConfirmPassword): v.ConfirmPassword,
		string(FieldAccountType):     v.AccountType,
		string(FieldCompanyName):     v.CompanyName,
		string(FieldAge):             v.Age,
		string(FieldWebsite):         v.Website,
		string(FieldTermsAccepted):   v.TermsAccepted,
	}
}

// Registration is a validated submission with coerced values.
type Registration struct {
	Username      string      `json:"username"`
	Email         string      `json:"email"`
	Password      string      `json:"-"`
	AccountType   AccountType `json:"accountType"`
	CompanyName   string      `json:"companyName,omitempty"`
	Age           int         `json:"age"`
	Website       string      `json:"website,omitempty"`
	TermsAccepted bool        `json:"termsAccepted"`
}
