// Package validator provides rule-based validation with structured, translatable errors.
//
// Rules are plain values built by constructor functions and evaluated with [Apply]:
//
//	err := validator.Apply(
//		validator.RequiredString("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.ValidTimeZone("timeZone", req.TimeZone),
//	)
//	if validator.IsValidationError(err) {
//		for _, fe := range validator.ExtractValidationErrors(err) {
//			fmt.Println(fe.Field, fe.Message)
//		}
//	}
//
// Every failed rule contributes one [ValidationError]. Each error carries a
// TranslationKey and TranslationValues so messages can be localized later
// with [ValidationErrors.Translate].
//
// Rules for the same field short-circuit: once a field has failed, later rules
// for that field are skipped, so a missing e-mail is reported as "required"
// and not additionally as "invalid email".
package validator
