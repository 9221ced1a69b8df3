package domain

import "errors"

// Sentinel errors for collection fetches. The error text of each is the
// message shown to the user.
var (
	// ErrInvalidURL indicates the request URL could not be built
	ErrInvalidURL = errors.New("Invalid request. Please try again later")

	// ErrNetwork indicates a generic transport or protocol failure
	ErrNetwork = errors.New("Something went wrong with the network. Please try again.")

	// ErrNoInternet indicates the device has no connectivity
	ErrNoInternet = errors.New("No internet connection. Please check your connection and try again.")

	// ErrServerError indicates the collection responded with a 5xx status
	ErrServerError = errors.New("The server is having problems. Please try again later.")

	// ErrTooManyRequests indicates the API rate limit was hit
	ErrTooManyRequests = errors.New("Too many requests. Please wait a moment and try again.")

	// ErrNoData indicates the collection returned no artworks
	ErrNoData = errors.New("No artworks found. Try a different search.")
)

// fetchErrors lists the sentinels in match priority order
var fetchErrors = []error{
	ErrInvalidURL,
	ErrNoInternet,
	ErrTooManyRequests,
	ErrServerError,
	ErrNoData,
	ErrNetwork,
}

// UnexpectedErrorMessage is shown for errors outside the fetch taxonomy
const UnexpectedErrorMessage = "An unexpected error occurred. Please try again."

// UserMessage returns the user-facing message for err.
// Returns "" for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range fetchErrors {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return UnexpectedErrorMessage
}
