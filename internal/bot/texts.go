package bot

// User-facing message texts.
const (
	textGreeting    = "Welcome to the store! Use the menu below to browse products or view your profile."
	textWelcomeBack = "You are already registered. Welcome back!"

	textMenu     = "Main menu"
	textProducts = "Available products:"

	textBtnMenu     = "Menu"
	textBtnProducts = "Products"
	textBtnProfile  = "Profile"
	textBtnBack     = "Back"
	textBtnBuy      = "Buy"

	textUnknownProduct    = "This product is no longer available."
	textUnsupportedAction = "Unsupported action"

	textNoSenderError = "Error: user information not available."
	textTryLater      = "Something went wrong. Please try again later."

	textPaymentDone    = "Payment successful! Thank you for your purchase."
	textPaymentError   = "Payment error. Please try again later or contact support."
	textOrderSaveError = "Could not save your order. Please contact support."
	textUserNotFound   = "We could not find your account. Press /start to register first."

	// The profile view does not render order history yet. TODO: list the
	// user's orders here once a history view is designed.
	textProfileNoOrders = "You have no orders yet."
)
