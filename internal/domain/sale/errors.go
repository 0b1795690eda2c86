package sale

import (
	"fmt"

	"github.com/erp/saleproject/internal/domain/shared"
)

// Error codes raised by the sale aggregate and the project synchronization
const (
	ErrCodeProjectMethods         = "SALE_PROJECT_METHODS"
	ErrCodeBackToDraft            = "SALE_BACK_TO_DRAFT"
	ErrCodeProjectReadonly        = "SALE_PROJECT_READONLY"
	ErrCodeInvalidWork            = "SALE_INVALID_WORK"
	ErrCodeMissingUnit            = "SALE_LINE_MISSING_UNIT"
	ErrCodeUnsupportedServiceUnit = "SALE_LINE_UNSUPPORTED_SERVICE_UNIT"
	ErrCodeProductNotSalable      = "PRODUCT_NOT_SALABLE"
	ErrCodeTaskProductMismatch    = "TASK_PRODUCT_MISMATCH"
	ErrCodeCannotLoadProject      = "SALE_CANNOT_LOAD_PROJECT"
	ErrCodeEffortOutOfRange       = "SALE_LINE_EFFORT_OUT_OF_RANGE"
)

// NewProjectMethodsError is raised when a sale tied to a project does not use manual methods
func NewProjectMethodsError(saleName string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeProjectMethods, fmt.Sprintf(
		"Invalid combination of shipment and invoicing methods on sale %q for process Projects. "+
			"You must set both to \"manual\".", saleName))
}

// NewBackToDraftError is raised when a done sale is reset without manual methods
func NewBackToDraftError(saleName string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeBackToDraft, fmt.Sprintf(
		"You can not set the state of the sale %q to Draft when it has not been processed "+
			"with both methods (shipment & invoicing) set to \"manual\".", saleName))
}

// NewMissingUnitError is raised when a line without unit has to be converted
func NewMissingUnitError(lineName string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeMissingUnit, fmt.Sprintf(
		"It is not possible to create or update the task for sale line %q because it doesn't have Unit.", lineName))
}

// NewUnsupportedServiceUnitError is raised when a service line is not expressed in a time unit
func NewUnsupportedServiceUnitError(lineName string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeUnsupportedServiceUnit, fmt.Sprintf(
		"It is not possible to create the task for the sale line %q because its product is a service "+
			"(or it doesn't have a product, so it is assumed it is a service) but the unit is not a Time UoM.", lineName))
}

// NewProductNotSalableError is raised when a task product cannot be put on a sale line
func NewProductNotSalableError(productName, taskName string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeProductNotSalable, fmt.Sprintf(
		"Product %q of task %q is not salable.", productName, taskName))
}

// NewEffortOutOfRangeError is raised when a service quantity does not fit a task effort
func NewEffortOutOfRangeError(lineName string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeEffortOutOfRange, fmt.Sprintf(
		"The quantity of sale line %q is too large to be used as a task effort.", lineName))
}
