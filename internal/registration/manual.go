package registration

import (
	"strings"

	"github.com/dmitrymomot/schemadeck/core/validator"
)

// ManualValidator checks the form with hand-written rules, one explicit
// rule per requirement.
type ManualValidator struct{}

// NewManualValidator returns the hand-written validator.
func NewManualValidator() ManualValidator {
	return ManualValidator{}
}

func (ManualValidator) Kind() Kind { return KindVanilla }

func (m ManualValidator) Validate(v FormValues) Result {
	errs := collect(validator.Apply(fieldRules(v)...))
	collectInto(errs, validator.Apply(crossFieldRules(v, errs)...))
	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	age, _ := validator.ParseInt(v.Age)
	reg := &Registration{
		Username:      v.Username,
		Email:         strings.TrimSpace(v.Email),
		Password:      v.Password,
		AccountType:   AccountType(v.AccountType),
		CompanyName:   strings.TrimSpace(v.CompanyName),
		Age:           age,
		Website:       strings.TrimSpace(v.Website),
		TermsAccepted: v.TermsAccepted,
	}
	return Result{Data: reg}
}

func (m ManualValidator) ValidateField(v FormValues, f Field) []string {
	return fieldOnly(m.Validate(v), f)
}

func fieldRules(v FormValues) []validator.Rule {
	email := strings.TrimSpace(v.Email)
	website := strings.TrimSpace(v.Website)
	_, ageIsInt := validator.ParseInt(v.Age)

	rules := []validator.Rule{
		validator.MinLenString(FieldUsername.String(), v.Username, usernameMin).WithMessage(MsgUsernameTooShort),
		validator.MaxLenString(FieldUsername.String(), v.Username, usernameMax).WithMessage(MsgUsernameTooLong),
		validator.MatchesRegex(FieldUsername.String(), v.Username, usernameRX, "letters, digits and underscores").WithMessage(MsgUsernameCharset),

		validator.RequiredString(FieldEmail.String(), email).WithMessage(MsgEmailRequired),
		validator.ValidEmail(FieldEmail.String(), email).WithMessage(MsgEmailInvalid),

		validator.MinLenString(FieldPassword.String(), v.Password, passwordMin).WithMessage(MsgPasswordTooShort),
		validator.Custom(FieldPassword.String(), func() bool { return strongPassword(v.Password) }, MsgPasswordWeak),

		validator.Custom(FieldConfirmPassword.String(), func() bool { return v.ConfirmPassword != "" }, MsgConfirmRequired),

		validator.InList(FieldAccountType.String(), v.AccountType, string(AccountPersonal), string(AccountBusiness)).WithMessage(MsgAccountType),

		validator.RequiredString(FieldAge.String(), v.Age).WithMessage(MsgAgeRequired),
	}

	rules = append(rules, validator.When(strings.TrimSpace(v.Age) != "",
		validator.ValidIntegerString(FieldAge.String(), v.Age).WithMessage(MsgAgeNotNumber),
	)...)
	rules = append(rules, validator.When(ageIsInt,
		validator.IntStringBetween(FieldAge.String(), v.Age, ageMin, ageMax).WithMessage(MsgAgeRange),
	)...)
	rules = append(rules, validator.When(website != "",
		validator.ValidURL(FieldWebsite.String(), website).WithMessage(MsgWebsiteInvalid),
	)...)
	rules = append(rules,
		validator.IsTrue(FieldTermsAccepted.String(), v.TermsAccepted).WithMessage(MsgTermsRequired),
	)
	return rules
}

// crossFieldRules returns the rules that read several fields. Each one runs
// only when the fields it depends on passed their own rules.
func crossFieldRules(v FormValues, errs FieldErrors) []validator.Rule {
	var rules []validator.Rule
	rules = append(rules, validator.When(!errs.Has(FieldPassword) && !errs.Has(FieldConfirmPassword),
		validator.EqualStrings(FieldConfirmPassword.String(), v.ConfirmPassword, v.Password).WithMessage(MsgPasswordMismatch),
	)...)
	rules = append(rules, validator.When(!errs.Has(FieldAccountType) && AccountType(v.AccountType) == AccountBusiness,
		validator.MinLenString(FieldCompanyName.String(), strings.TrimSpace(v.CompanyName), companyMin).WithMessage(MsgCompanyRequired),
	)...)
	return rules
}

func collect(err error) FieldErrors {
	errs := FieldErrors{}
	collectInto(errs, err)
	return errs
}

func collectInto(errs FieldErrors, err error) {
	for _, e := range validator.ExtractValidationErrors(err) {
		errs.Add(Field(e.Field), e.Message)
	}
}
