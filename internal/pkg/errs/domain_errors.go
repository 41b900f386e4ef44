package errs

// Sentinel errors shared by the domain, usecase and handler layers.
// Typed errors in the usecase layer (conflict, incomplete intake, generator
// failure) match these through Is so handlers only need errs.Is.
var (
	// Booking errors
	ErrInvalidTimeRange = New("invalid time range")
	ErrInvalidBooking   = New("invalid booking")
	ErrBookingNotFound  = New("booking not found")
	ErrBookingConflict  = New("booking conflict")
	ErrDuplicateBooking = New("duplicate booking id")

	// Intake errors
	ErrIntakeComplete   = New("intake already complete")
	ErrIntakeIncomplete = New("intake incomplete")

	// Generator errors
	ErrGeneratorFailed      = New("generator failed")
	ErrGeneratorUnavailable = New("generator not configured")

	// Operation errors
	ErrDatabaseOperationFailed = New("database operation failed")
)
