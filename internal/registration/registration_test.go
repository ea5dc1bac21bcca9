package registration_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/internal/registration"
)

func validValues() registration.FormValues {
	return registration.FormValues{
		Username:        "valid_user1",
		Email:           "ada@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		AccountType:     "Personal",
		Age:             "36",
		TermsAccepted:   true,
	}
}

func validators() []registration.Validator {
	return []registration.Validator{
		registration.NewManualValidator(),
		registration.NewSchemaValidator(),
	}
}

type validationCase struct {
	name   string
	mutate func(*registration.FormValues)
	// want is the displayed message per failing field; empty means success.
	want map[registration.Field]string
}

var validationCases = []validationCase{
	{"valid", func(v *registration.FormValues) {}, nil},
	{"password mismatch attaches to confirm", func(v *registration.FormValues) { v.ConfirmPassword = "Secret124" },
		map[registration.Field]string{registration.FieldConfirmPassword: registration.MsgPasswordMismatch}},
	{"business without company", func(v *registration.FormValues) { v.AccountType = "Business" },
		map[registration.Field]string{registration.FieldCompanyName: registration.MsgCompanyRequired}},
	{"business with short company", func(v *registration.FormValues) {
		v.AccountType = "Business"
		v.CompanyName = " A "
	}, map[registration.Field]string{registration.FieldCompanyName: registration.MsgCompanyRequired}},
	{"business with company", func(v *registration.FormValues) {
		v.AccountType = "Business"
		v.CompanyName = "Acme"
	}, nil},
	{"personal without company", func(v *registration.FormValues) { v.CompanyName = "" }, nil},
	{"age 17", func(v *registration.FormValues) { v.Age = "17" },
		map[registration.Field]string{registration.FieldAge: registration.MsgAgeRange}},
	{"age 18", func(v *registration.FormValues) { v.Age = "18" }, nil},
	{"age 120", func(v *registration.FormValues) { v.Age = "120" }, nil},
	{"age 121", func(v *registration.FormValues) { v.Age = "121" },
		map[registration.Field]string{registration.FieldAge: registration.MsgAgeRange}},
	{"age abc", func(v *registration.FormValues) { v.Age = "abc" },
		map[registration.Field]string{registration.FieldAge: registration.MsgAgeNotNumber}},
	{"age empty", func(v *registration.FormValues) { v.Age = "" },
		map[registration.Field]string{registration.FieldAge: registration.MsgAgeRequired}},
	{"website empty", func(v *registration.FormValues) { v.Website = "" }, nil},
	{"website not a url", func(v *registration.FormValues) { v.Website = "not-a-url" },
		map[registration.Field]string{registration.FieldWebsite: registration.MsgWebsiteInvalid}},
	{"website https", func(v *registration.FormValues) { v.Website = "https://example.com" }, nil},
	{"username too short", func(v *registration.FormValues) { v.Username = "ab" },
		map[registration.Field]string{registration.FieldUsername: registration.MsgUsernameTooShort}},
	{"username too long", func(v *registration.FormValues) { v.Username = strings.Repeat("a", 21) },
		map[registration.Field]string{registration.FieldUsername: registration.MsgUsernameTooLong}},
	{"username charset", func(v *registration.FormValues) { v.Username = "bad name!" },
		map[registration.Field]string{registration.FieldUsername: registration.MsgUsernameCharset}},
	{"email empty", func(v *registration.FormValues) { v.Email = "" },
		map[registration.Field]string{registration.FieldEmail: registration.MsgEmailRequired}},
	{"email invalid", func(v *registration.FormValues) { v.Email = "ada@" },
		map[registration.Field]string{registration.FieldEmail: registration.MsgEmailInvalid}},
	{"password short", func(v *registration.FormValues) {
		v.Password = "Ab1"
		v.ConfirmPassword = "Ab1"
	}, map[registration.Field]string{registration.FieldPassword: registration.MsgPasswordTooShort}},
	{"password weak", func(v *registration.FormValues) {
		v.Password = "alllowercase1"
		v.ConfirmPassword = "alllowercase1"
	}, map[registration.Field]string{registration.FieldPassword: registration.MsgPasswordWeak}},
	{"password past 72 bytes", func(v *registration.FormValues) {
		v.Password = "Aa1" + strings.Repeat("x", 70)
		v.ConfirmPassword = v.Password
	}, nil},
	{"password of 20 emoji", func(v *registration.FormValues) {
		v.Password = "Aa1" + strings.Repeat("🙂", 20)
		v.ConfirmPassword = v.Password
	}, nil},
	{"confirm empty", func(v *registration.FormValues) { v.ConfirmPassword = "" },
		map[registration.Field]string{registration.FieldConfirmPassword: registration.MsgConfirmRequired}},
	{"mismatch hidden while password invalid", func(v *registration.FormValues) {
		v.Password = "short"
		v.ConfirmPassword = "other"
	}, map[registration.Field]string{registration.FieldPassword: registration.MsgPasswordTooShort}},
	{"account type missing", func(v *registration.FormValues) { v.AccountType = "" },
		map[registration.Field]string{registration.FieldAccountType: registration.MsgAccountType}},
	{"account type wrong case", func(v *registration.FormValues) { v.AccountType = "business" },
		map[registration.Field]string{registration.FieldAccountType: registration.MsgAccountType}},
	{"terms not accepted", func(v *registration.FormValues) { v.TermsAccepted = false },
		map[registration.Field]string{registration.FieldTermsAccepted: registration.MsgTermsRequired}},
}

func displayed(errs registration.FieldErrors) map[registration.Field]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[registration.Field]string, len(errs))
	for f := range errs {
		out[f] = errs.First(f)
	}
	return out
}

func TestValidators(t *testing.T) {
	t.Parallel()

	for _, v := range validators() {
		for _, tc := range validationCases {
			t.Run(string(v.Kind())+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				values := validValues()
				tc.mutate(&values)

				res := v.Validate(values)
				if diff := cmp.Diff(tc.want, displayed(res.Errors)); diff != "" {
					t.Fatalf("displayed errors mismatch (-want +got):\n%s", diff)
				}
				assert.Equal(t, tc.want == nil, res.OK())
				if res.OK() {
					require.NotNil(t, res.Data)
				} else {
					assert.Nil(t, res.Data)
				}
			})
		}
	}
}

func TestValidatorsAgree(t *testing.T) {
	t.Parallel()

	manual, schema := registration.NewManualValidator(), registration.NewSchemaValidator()
	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			values := validValues()
			tc.mutate(&values)

			a, b := manual.Validate(values), schema.Validate(values)
			if diff := cmp.Diff(a.Errors, b.Errors); diff != "" {
				t.Errorf("manual and schema disagree (-manual +schema):\n%s", diff)
			}
			if diff := cmp.Diff(a.Data, b.Data); diff != "" {
				t.Errorf("coerced data differs (-manual +schema):\n%s", diff)
			}
		})
	}

	empty := registration.FormValues{}
	if diff := cmp.Diff(manual.Validate(empty).Errors, schema.Validate(empty).Errors); diff != "" {
		t.Errorf("empty form disagreement (-manual +schema):\n%s", diff)
	}
}

func TestValidationIsIdempotent(t *testing.T) {
	t.Parallel()

	values := registration.FormValues{Username: "a!", Age: "abc", AccountType: "Business", Website: "nope"}
	for _, v := range validators() {
		first := v.Validate(values)
		second := v.Validate(values)
		assert.Equal(t, first, second, v.Kind())
		assert.Len(t, first.Errors, 8, v.Kind())
	}
}

func TestValidateFieldMatchesFullPass(t *testing.T) {
	t.Parallel()

	values := validValues()
	values.Email = "nope"
	values.ConfirmPassword = "Different1"

	for _, v := range validators() {
		full := v.Validate(values)
		for _, f := range registration.Fields() {
			assert.Equal(t, full.Errors[f], v.ValidateField(values, f), "%s/%s", v.Kind(), f)
		}
		assert.Equal(t, []string{registration.MsgPasswordMismatch}, v.ValidateField(values, registration.FieldConfirmPassword))
		assert.Empty(t, v.ValidateField(values, registration.FieldUsername))
	}
}

func TestCoercedRegistration(t *testing.T) {
	t.Parallel()

	values := validValues()
	values.Email = "  ada@example.com "
	values.Age = " 42 "
	values.AccountType = "Business"
	values.CompanyName = "  Acme Ltd "
	values.Website = " https://example.com "

	want := &registration.Registration{
		Username:      "valid_user1",
		Email:         "ada@example.com",
		Password:      "Secret123",
		AccountType:   registration.AccountBusiness,
		CompanyName:   "Acme Ltd",
		Age:           42,
		Website:       "https://example.com",
		TermsAccepted: true,
	}
	for _, v := range validators() {
		res := v.Validate(values)
		require.True(t, res.OK(), v.Kind())
		if diff := cmp.Diff(want, res.Data); diff != "" {
			t.Errorf("%s registration mismatch (-want +got):\n%s", v.Kind(), diff)
		}
	}
}

func TestNewValidator(t *testing.T) {
	t.Parallel()

	for _, kind := range registration.Kinds {
		v, err := registration.NewValidator(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, v.Kind())
	}
	_, err := registration.NewValidator("zod")
	assert.ErrorIs(t, err, registration.ErrUnknownKind)
}

func TestState(t *testing.T) {
	t.Parallel()

	st := registration.NewState(registration.FormValues{})
	st.SetErrors(registration.FieldErrors{
		registration.FieldEmail:    {registration.MsgEmailRequired, registration.MsgEmailInvalid},
		registration.FieldUsername: {registration.MsgUsernameTooShort},
	})

	require.NoError(t, st.Set(registration.FieldEmail, "ada@example.com"))
	assert.Equal(t, "ada@example.com", st.Values().Email)
	assert.Empty(t, st.Error(registration.FieldEmail), "setting a field clears its error")
	assert.Equal(t, registration.MsgUsernameTooShort, st.Error(registration.FieldUsername), "other errors stay")

	assert.ErrorIs(t, st.Set("nickname", "x"), registration.ErrUnknownField)

	for _, in := range []string{"on", "TRUE", "1", "Yes"} {
		require.NoError(t, st.Set(registration.FieldTermsAccepted, in))
		assert.True(t, st.Values().TermsAccepted, in)
	}
	require.NoError(t, st.Set(registration.FieldTermsAccepted, "off"))
	assert.False(t, st.Values().TermsAccepted)

	errs := st.Errors()
	errs.Add(registration.FieldAge, "mutated copy")
	assert.False(t, st.Errors().Has(registration.FieldAge), "Errors returns a copy")

	st.SetFieldErrors(registration.FieldAge, []string{registration.MsgAgeRequired})
	assert.Equal(t, registration.MsgAgeRequired, st.Error(registration.FieldAge))
	st.SetFieldErrors(registration.FieldAge, nil)
	assert.False(t, st.Errors().Has(registration.FieldAge))

	st.ClearErrors()
	assert.True(t, st.Valid())
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	errs := registration.FieldErrors{}
	errs.Add(registration.FieldWebsite, registration.MsgWebsiteInvalid)
	errs.Add(registration.FieldUsername, registration.MsgUsernameTooShort)
	errs.Add(registration.FieldUsername, registration.MsgUsernameCharset)

	assert.Equal(t, []registration.FieldError{
		{Field: registration.FieldUsername, Message: registration.MsgUsernameTooShort},
		{Field: registration.FieldWebsite, Message: registration.MsgWebsiteInvalid},
	}, errs.List())
	assert.Equal(t, map[string][]string{
		"username": {registration.MsgUsernameTooShort, registration.MsgUsernameCharset},
		"website":  {registration.MsgWebsiteInvalid},
	}, errs.Strings())
	assert.Equal(t, "username: "+registration.MsgUsernameTooShort, errs.List()[0].Error())

	f, err := registration.ParseField("confirmPassword")
	require.NoError(t, err)
	assert.Equal(t, registration.FieldConfirmPassword, f)
	_, err = registration.ParseField("password2")
	assert.ErrorIs(t, err, registration.ErrUnknownField)
}

func TestSubmitter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf), logger.WithLevel(-4))
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	for _, v := range validators() {
		t.Run(string(v.Kind()), func(t *testing.T) {
			sub := registration.NewSubmitter(v,
				registration.WithBcryptCost(bcrypt.MinCost),
				registration.WithSubmitLogger(log),
				registration.WithClock(func() time.Time { return now }),
			)
			assert.Equal(t, v.Kind(), sub.Validator().Kind())

			bad := validValues()
			bad.Age = "17"
			st := registration.NewState(bad)
			out, err := sub.Submit(context.Background(), st)
			require.NoError(t, err)
			assert.False(t, out.Accepted)
			assert.Nil(t, out.Account)
			assert.Equal(t, registration.MsgAgeRange, st.Error(registration.FieldAge))

			require.NoError(t, st.Set(registration.FieldAge, "18"))
			buf.Reset()
			out, err = sub.Submit(context.Background(), st)
			require.NoError(t, err)
			require.True(t, out.Accepted)
			assert.Equal(t, registration.MsgSubmitted, out.Message)
			assert.True(t, st.Valid())
			assert.Equal(t, "18", st.Values().Age, "values are not reset after success")

			acct := out.Account
			require.NotNil(t, acct)
			assert.Equal(t, 18, acct.Registration.Age)
			assert.Empty(t, acct.Registration.Password)
			assert.Equal(t, now, acct.SubmittedAt)
			assert.NoError(t, bcrypt.CompareHashAndPassword(acct.PasswordHash, registration.PasswordDigest("Secret123")))

			logged := buf.String()
			assert.Contains(t, logged, "registration accepted")
			assert.Contains(t, logged, acct.ID.String())
			assert.Contains(t, logged, "a***@example.com")
			assert.NotContains(t, logged, "Secret123")
			assert.Equal(t, 1, strings.Count(logged, `"kind":`), "kind is logged once")
			assert.NotContains(t, logged, "ada@example.com")
		})
	}
}

func TestSubmitterLongPassword(t *testing.T) {
	t.Parallel()

	for _, v := range validators() {
		t.Run(string(v.Kind()), func(t *testing.T) {
			t.Parallel()
			sub := registration.NewSubmitter(v,
				registration.WithBcryptCost(bcrypt.MinCost),
				registration.WithSubmitLogger(logger.Discard()),
			)

			values := validValues()
			values.Password = "Aa1" + strings.Repeat("x", 97)
			values.ConfirmPassword = values.Password

			out, err := sub.Submit(context.Background(), registration.NewState(values))
			require.NoError(t, err)
			require.True(t, out.Accepted)

			hash := out.Account.PasswordHash
			assert.NoError(t, bcrypt.CompareHashAndPassword(hash, registration.PasswordDigest(values.Password)))
			assert.Error(t, bcrypt.CompareHashAndPassword(hash, registration.PasswordDigest(values.Password[:72])),
				"bytes past 72 still count")
		})
	}
}
