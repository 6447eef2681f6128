package timemarket

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
)

const (
	KeyspacesPath    = "/keyspaces"
	TokenFieldsPath  = "/tokenFields"
	TokenPath        = "/token"
	SellerTokensPath = "/sellerTokens"
	SellersPath      = "/sellers"
	StatsPath        = "/stats"
)

// NewInspectHandler serves an Inspect over HTTP as JSON. Lookup
// arguments travel in JSON POST bodies; a missing token maps to 404.
func NewInspectHandler(inspect Inspect) http.HandlerFunc {
	var (
		// path pattern matchers
		endsInKeyspaces    = regexp.MustCompile("/keyspaces$")
		endsInTokenFields  = regexp.MustCompile("/tokenFields$")
		endsInToken        = regexp.MustCompile("/token$")
		endsInSellerTokens = regexp.MustCompile("/sellerTokens$")
		endsInSellers      = regexp.MustCompile("/sellers$")
		endsInStats        = regexp.MustCompile("/stats$")

		// handlers
		keyspacesHandler    = buildKeyspacesHandler(inspect)
		tokenFieldsHandler  = buildTokenFieldsHandler(inspect)
		tokenHandler        = buildTokenHandler(inspect)
		sellerTokensHandler = buildSellerTokensHandler(inspect)
		sellersHandler      = buildSellersHandler(inspect)
		statsHandler        = buildStatsHandler(inspect)
	)

	return func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case endsInKeyspaces.MatchString(request.URL.Path):
			keyspacesHandler.ServeHTTP(writer, request)
		case endsInTokenFields.MatchString(request.URL.Path):
			tokenFieldsHandler.ServeHTTP(writer, request)
		case endsInSellerTokens.MatchString(request.URL.Path):
			sellerTokensHandler.ServeHTTP(writer, request)
		case endsInSellers.MatchString(request.URL.Path):
			sellersHandler.ServeHTTP(writer, request)
		case endsInToken.MatchString(request.URL.Path):
			tokenHandler.ServeHTTP(writer, request)
		case endsInStats.MatchString(request.URL.Path):
			statsHandler.ServeHTTP(writer, request)
		default:
			http.NotFound(writer, request)
		}
	}
}

func buildKeyspacesHandler(inspect Inspect) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		result, err := inspect.Keyspaces()
		if err != nil {
			response.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(response, result)
	}
}

func buildTokenFieldsHandler(inspect Inspect) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		result, err := inspect.TokenFields()
		if err != nil {
			response.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(response, result)
	}
}

type requestToken struct {
	ID uint64 `json:"id"`
}

func buildTokenHandler(inspect Inspect) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		var req requestToken
		if !readJSONBody(response, request, &req) {
			return
		}

		result, err := inspect.Token(request.Context(), req.ID)
		if err != nil {
			if errors.Is(err, ErrTokenNotFound) {
				response.WriteHeader(http.StatusNotFound)
				return
			}
			response.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(response, result)
	}
}

type requestSellerTokens struct {
	Seller Identity `json:"seller"`
}

func buildSellerTokensHandler(inspect Inspect) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		var req requestSellerTokens
		if !readJSONBody(response, request, &req) {
			return
		}

		result, err := inspect.SellerTokens(request.Context(), req.Seller)
		if err != nil {
			response.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(response, result)
	}
}

func buildSellersHandler(inspect Inspect) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		result, err := inspect.Sellers(request.Context())
		if err != nil {
			response.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(response, result)
	}
}

func buildStatsHandler(inspect Inspect) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		result, err := inspect.Stats(request.Context())
		if err != nil {
			response.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(response, result)
	}
}

func readJSONBody(response http.ResponseWriter, request *http.Request, v interface{}) bool {
	data, err := io.ReadAll(request.Body)
	if err != nil {
		response.WriteHeader(http.StatusInternalServerError)
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		response.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(response http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	response.Header().Set("Content-Type", "application/json")
	_, _ = response.Write(data)
}
