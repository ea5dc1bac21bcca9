package registration

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/schemadeck/pkg/schema"
)

// Schema declares every registration rule once. The schema form
// and the JSON API both parse through it.
var Schema = schema.Object(schema.Shape{
	string(FieldUsername): schema.String().
		Min(usernameMin, MsgUsernameTooShort).
		Max(usernameMax, MsgUsernameTooLong).
		Regex(usernameRX, MsgUsernameCharset),
	string(FieldEmail): schema.String().
		Trim().
		NonEmpty(MsgEmailRequired).
		Email(MsgEmailInvalid),
	string(FieldPassword): schema.String().
		Min(passwordMin, MsgPasswordTooShort).
		Refine(strongPassword, MsgPasswordWeak),
	string(FieldConfirmPassword): schema.String().
		NonEmpty(MsgConfirmRequired),
	string(FieldAccountType): schema.Enum(string(AccountPersonal), string(AccountBusiness)).
		Message(MsgAccountType),
	string(FieldCompanyName): schema.Optional[string](schema.String().Trim()),
	string(FieldAge): schema.Pipe[int, int](
		schema.ParseInt(schema.String().Trim().NonEmpty(MsgAgeRequired), MsgAgeNotNumber),
		schema.Int().Between(ageMin, ageMax, MsgAgeRange),
	),
	string(FieldWebsite): schema.Pipe[string, string](
		schema.String().Trim(),
		schema.OrEmpty(schema.String().URL(MsgWebsiteInvalid)),
	),
	string(FieldTermsAccepted): schema.Bool().True(MsgTermsRequired),
}).
	Refine(func(v schema.Values) bool {
		return v.String(string(FieldPassword)) == v.String(string(FieldConfirmPassword))
	}, MsgPasswordMismatch,
		schema.At(string(FieldConfirmPassword)),
		schema.When(string(FieldPassword), string(FieldConfirmPassword)),
	).
	Refine(func(v schema.Values) bool {
		if AccountType(v.String(string(FieldAccountType))) != AccountBusiness {
			return true
		}
		return utf8.RuneCountInString(strings.TrimSpace(v.String(string(FieldCompanyName)))) >= companyMin
	}, MsgCompanyRequired,
		schema.At(string(FieldCompanyName)),
		schema.When(string(FieldAccountType), string(FieldCompanyName)),
	)

// SchemaValidator checks the form with Schema.
type SchemaValidator struct {
	schema *schema.ObjectSchema
}

// NewSchemaValidator returns a validator backed by Schema.
func NewSchemaValidator() SchemaValidator {
	return SchemaValidator{schema: Schema}
}

func (SchemaValidator) Kind() Kind { return KindSchema }

func (s SchemaValidator) Validate(v FormValues) Result {
	res := s.schema.SafeParse(v.Map())
	if !res.Success {
		errs := FieldErrors{}
		for _, issue := range res.Error {
			key := ""
			if len(issue.Path) > 0 {
				key = issue.Path[0]
			}
			errs.Add(Field(key), issue.Message)
		}
		return Result{Errors: errs}
	}

	data := res.Data
	return Result{Data: &Registration{
		Username:      data.String(string(FieldUsername)),
		Email:         data.String(string(FieldEmail)),
		Password:      data.String(string(FieldPassword)),
		AccountType:   AccountType(data.String(string(FieldAccountType))),
		CompanyName:   data.String(string(FieldCompanyName)),
		Age:           data.Int(string(FieldAge)),
		Website:       data.String(string(FieldWebsite)),
		TermsAccepted: data.Bool(string(FieldTermsAccepted)),
	}}
}

func (s SchemaValidator) ValidateField(v FormValues, f Field) []string {
	return fieldOnly(s.Validate(v), f)
}
