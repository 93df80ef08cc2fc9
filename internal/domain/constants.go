package domain

// Default configuration values
const (
	DefaultCapacity = 8

	DefaultConstraintCellStart = "10:00"
	DefaultConstraintCellStep  = 30 // minutes
	DefaultConstraintCellCount = 25
)

// Business validation constants
const (
	MinPeople         = 1
	MaxPeople         = 100
	MaxCapacity       = 1000
	MaxLineQuantity   = 50
	MaxServiceLines   = 20
	MaxCommentLength  = 1000
	MaxMessageLength  = 1000
	MaxRangesPerRule  = 48
	MoneyPlaces       = 2
	OrderIDRandDigits = 4
)

// Time format constants
const (
	TimeFormat    = "15:04"      // HH:MM
	DateFormat    = "2006-01-02" // YYYY-MM-DD
	OrderIDLayout = "02012006"   // ddmmyyyy
)

// NoChangesMessage маркер "изменений нет" для журнала
const NoChangesMessage = "no changes"

// CurrencySymbol is appended to money values in audit messages
const CurrencySymbol = "€"
