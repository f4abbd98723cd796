package engine

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

// RESTfulJSONResponse outputs a JSON response of the response interface
func RESTfulJSONResponse(w http.ResponseWriter, status int, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(response)
}

// RESTfulError prints the REST method and error
func RESTfulError(method string, err error) {
	log.Errorf(log.RESTSys, "RESTful %s: server failed to send JSON response. Error %s",
		method, err)
}

// writeError writes an APIError body with the supplied status
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if err := RESTfulJSONResponse(w, status, APIError{Error: msg}); err != nil {
		RESTfulError(r.Method, err)
	}
}

// decodeAPIRequest reads the request body and resolves the exchange path
// variable. It writes the error response itself and returns false on failure.
func (e *Engine) decodeAPIRequest(w http.ResponseWriter, r *http.Request, requireWithdrawals bool) (exchange.Client, *APIRequest, bool) {
	c, err := e.GetExchangeByName(mux.Vars(r)["exchange"])
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return nil, nil, false
	}
	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, ErrStrInvalidBody)
		return nil, nil, false
	}
	if req.Key == "" || req.Secret == "" || requireWithdrawals && req.Withdrawals == nil {
		msg := ErrStrCredentialsRequired
		if requireWithdrawals {
			msg = ErrStrCredentialsWithdrawalsRequired
		}
		writeError(w, r, http.StatusBadRequest, msg)
		return nil, nil, false
	}
	return c, &req, true
}

// failureMessage returns the exchange message or the fallback when empty
func failureMessage(err error, fallback string) string {
	if msg := exchange.ErrorMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// RESTGetBalance returns the non-zero balances of the supplied account
func (e *Engine) RESTGetBalance(w http.ResponseWriter, r *http.Request) {
	c, req, ok := e.decodeAPIRequest(w, r, false)
	if !ok {
		return
	}
	balances, err := c.FetchBalances(r.Context(), &req.Credentials)
	if err != nil {
		log.Errorf(log.RESTSys, "%s balance fetch for %s failed: %v", c.GetName(), &req.Credentials, err)
		writeError(w, r, http.StatusInternalServerError, failureMessage(err, ErrStrFetchBalance))
		return
	}
	if err := RESTfulJSONResponse(w, http.StatusOK, balances); err != nil {
		RESTfulError(r.Method, err)
	}
}

// RESTGetCoins returns per coin withdrawal network configuration
func (e *Engine) RESTGetCoins(w http.ResponseWriter, r *http.Request) {
	c, req, ok := e.decodeAPIRequest(w, r, false)
	if !ok {
		return
	}
	coins, err := c.FetchCoinNetworks(r.Context(), &req.Credentials)
	if err != nil {
		log.Errorf(log.RESTSys, "%s coin fetch for %s failed: %v", c.GetName(), &req.Credentials, err)
		writeError(w, r, http.StatusInternalServerError, failureMessage(err, ErrStrFetchCoins))
		return
	}
	if err := RESTfulJSONResponse(w, http.StatusOK, coins); err != nil {
		RESTfulError(r.Method, err)
	}
}

// RESTWithdraw submits the withdrawal batch and returns one result per item
// in input order
func (e *Engine) RESTWithdraw(w http.ResponseWriter, r *http.Request) {
	c, req, ok := e.decodeAPIRequest(w, r, true)
	if !ok {
		return
	}
	results, err := e.BulkWithdraw(r.Context(), c.GetName(), &req.Credentials, req.Withdrawals, nil)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrExchangeNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, r, status, err.Error())
		return
	}
	if err := RESTfulJSONResponse(w, http.StatusOK, results); err != nil {
		RESTfulError(r.Method, err)
	}
}
