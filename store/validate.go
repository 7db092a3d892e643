package store

import (
	"fmt"
	"reflect"

	models "inventory-billing/model"
	pkgerrors "inventory-billing/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func validateCatalog(catalog models.Catalog) error {
	for _, rec := range catalog.Sorted() {
		if err := validate.Struct(rec); err != nil {
			details := map[string]string{}
			if errs, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range errs {
					details[fieldErr.Field()] = fieldErr.Tag()
				}
			}
			return pkgerrors.Wrap(pkgerrors.CodeMalformedData, err, fmt.Sprintf("invalid stock record %q", rec.ID)).
				WithDetails(details)
		}
	}
	return nil
}
