package locale

// Message key constants for localization.
// All user-facing copy goes through these constants; category labels are
// data, not copy, and are deliberately not localized.
const (
	// Main menu
	WelcomeMessage = "WelcomeMessage"
	ChooseAction   = "ChooseAction"

	// Menu buttons
	BtnShowAll          = "BtnShowAll"
	BtnSearchCategory   = "BtnSearchCategory"
	BtnMyAds            = "BtnMyAds"
	BtnAddAd            = "BtnAddAd"
	BtnBackToMenu       = "BtnBackToMenu"
	BtnBackToCategories = "BtnBackToCategories"
	BtnDelete           = "BtnDelete"

	// Category browsing
	CategoryPickerPrompt = "CategoryPickerPrompt"
	CategoryHeader       = "CategoryHeader"
	CategoryEmpty        = "CategoryEmpty"

	// Listings
	AllAdsHeader     = "AllAdsHeader"
	AllAdsEmpty      = "AllAdsEmpty"
	MyAdsHeader      = "MyAdsHeader"
	MyAdsEmpty       = "MyAdsEmpty"
	AdCard           = "AdCard"
	AdCardNoCategory = "AdCardNoCategory"

	// Ad creation wizard
	WizardAskCategory    = "WizardAskCategory"
	WizardAskTitle       = "WizardAskTitle"
	WizardAskDescription = "WizardAskDescription"
	WizardAskPhoto       = "WizardAskPhoto"
	WizardAskPrice       = "WizardAskPrice"
	WizardInvalidPrice   = "WizardInvalidPrice"
	WizardAskContact     = "WizardAskContact"
	WizardAdCreated      = "WizardAdCreated"
	WizardCancelled      = "WizardCancelled"

	// Deletion
	DeleteSuccess  = "DeleteSuccess"
	DeleteDenied   = "DeleteDenied"
	DeleteNotFound = "DeleteNotFound"

	// Errors
	ErrorGeneric = "ErrorGeneric"
)

// allKeys lists every message key; the completeness test walks it
// against each embedded locale file.
var allKeys = []string{
	WelcomeMessage,
	ChooseAction,
	BtnShowAll,
	BtnSearchCategory,
	BtnMyAds,
	BtnAddAd,
	BtnBackToMenu,
	BtnBackToCategories,
	BtnDelete,
	CategoryPickerPrompt,
	CategoryHeader,
	CategoryEmpty,
	AllAdsHeader,
	AllAdsEmpty,
	MyAdsHeader,
	MyAdsEmpty,
	AdCard,
	AdCardNoCategory,
	WizardAskCategory,
	WizardAskTitle,
	WizardAskDescription,
	WizardAskPhoto,
	WizardAskPrice,
	WizardInvalidPrice,
	WizardAskContact,
	WizardAdCreated,
	WizardCancelled,
	DeleteSuccess,
	DeleteDenied,
	DeleteNotFound,
	ErrorGeneric,
}
