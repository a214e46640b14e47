package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.requireActivatedUser(h.listBooksHandler))
	router.HandlerFunc(http.MethodPost, "/v1/books", h.requireAdminUser(h.createBookHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books/:bookId", h.requireActivatedUser(h.showBookHandler))
	router.HandlerFunc(http.MethodPut, "/v1/books/:bookId", h.requireAdminUser(h.updateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/books/:bookId", h.requireAdminUser(h.deleteBookHandler))
	router.HandlerFunc(http.MethodGet, "/v1/catalog", h.requireActivatedUser(h.listCatalogHandler))

	router.HandlerFunc(http.MethodGet, "/v1/authors", h.requireActivatedUser(h.listAuthorsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/authors", h.requireAdminUser(h.createAuthorHandler))
	router.HandlerFunc(http.MethodGet, "/v1/authors/:authorId", h.requireActivatedUser(h.showAuthorHandler))
	router.HandlerFunc(http.MethodPut, "/v1/authors/:authorId", h.requireAdminUser(h.updateAuthorHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/authors/:authorId", h.requireAdminUser(h.deleteAuthorHandler))

	router.HandlerFunc(http.MethodGet, "/v1/publishers", h.requireActivatedUser(h.listPublishersHandler))
	router.HandlerFunc(http.MethodPost, "/v1/publishers", h.requireAdminUser(h.createPublisherHandler))
	router.HandlerFunc(http.MethodGet, "/v1/publishers/:publisherId", h.requireActivatedUser(h.showPublisherHandler))
	router.HandlerFunc(http.MethodPut, "/v1/publishers/:publisherId", h.requireAdminUser(h.updatePublisherHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/publishers/:publisherId", h.requireAdminUser(h.deletePublisherHandler))

	router.HandlerFunc(http.MethodPost, "/v1/loans", h.requireActivatedUser(h.requestLoanHandler))
	router.HandlerFunc(http.MethodGet, "/v1/loans/pending", h.requireAdminUser(h.listPendingLoansHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/loans/:loanId/status", h.requireAdminUser(h.approveLoanHandler))

	router.HandlerFunc(http.MethodPost, "/v1/users", h.registerUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/activated", h.activateUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/password", h.resetUserPasswordHandler)

	router.HandlerFunc(http.MethodGet, "/v1/users/profile", h.requireActivatedUser(h.showUserHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/users/profile", h.requireActivatedUser(h.updateUserHandler))
	router.HandlerFunc(http.MethodPut, "/v1/users/profile", h.requireActivatedUser(h.updateUserPasswordHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/profile", h.requireActivatedUser(h.deleteUserHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/users/profile/picture", h.requireActivatedUser(h.updateUserProfilePictureHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/loans", h.requireActivatedUser(h.listUserLoansHandler))

	router.HandlerFunc(http.MethodPost, "/v1/tokens/activation", h.createActivationTokenHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", h.createAuthenticationTokenHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tokens/otp", h.createOTPTokenHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/tokens/authentication", h.requireAuthenticatedUser(h.deleteAuthenticationTokenHandler))
	router.HandlerFunc(http.MethodPost, "/v1/tokens/password-reset", h.createPasswordResetTokenHandler)

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.metrics(h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(router)))))
}
