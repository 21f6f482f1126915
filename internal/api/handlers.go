package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "restaurant-workers/internal/common/errors"
	createrating "restaurant-workers/internal/workers/feedback/create-rating"
	generateuploadurl "restaurant-workers/internal/workers/feedback/generate-upload-url"
	getrestaurantmenu "restaurant-workers/internal/workers/menu/get-restaurant-menu"
	getrestaurantrecommendations "restaurant-workers/internal/workers/menu/get-restaurant-recommendations"
	globalfoodsearch "restaurant-workers/internal/workers/menu/global-food-search"
	createorder "restaurant-workers/internal/workers/orders/create-order"
	getorders "restaurant-workers/internal/workers/orders/get-orders"
	updateorderstatus "restaurant-workers/internal/workers/orders/update-order-status"
	processpayment "restaurant-workers/internal/workers/payments/process-payment"
)

// maxBodyBytes bounds request bodies; ratings carry the largest payload.
const maxBodyBytes = 1 << 20

// getRestaurantMenu handles GET /restaurants/{restaurantId}/menu and
// returns the bare item list.
func (rt *Router) getRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantId")
	out, err := rt.services.Menu.Execute(r.Context(), &getrestaurantmenu.Input{RestaurantID: id})
	if err != nil {
		stdErr := apperrors.AsStandardError(err)
		if stdErr.Code == apperrors.ErrCodeNotFound {
			writeJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("Restaurant menu not found for ID: %s", id)))
			return
		}
		rt.respondError(w, r, stdErr)
		return
	}
	writeJSON(w, http.StatusOK, out.Items)
}

// globalFoodSearch handles GET /search/global?query=&from=&size= and returns
// the matching documents.
func (rt *Router) globalFoodSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := globalfoodsearch.Input{Query: q.Get("query")}

	var err error
	if input.From, err = intParam(q.Get("from")); err != nil {
		rt.respondError(w, r, apperrors.NewValidationError("from must be an integer"))
		return
	}
	if input.Size, err = intParam(q.Get("size")); err != nil {
		rt.respondError(w, r, apperrors.NewValidationError("size must be an integer"))
		return
	}

	out, err := rt.services.Search.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out.Results)
}

// generateUploadURL handles POST /uploads. The body is optional.
func (rt *Router) generateUploadURL(w http.ResponseWriter, r *http.Request) {
	var input generateuploadurl.Input
	if err := decodeBody(r, &input, true); err != nil {
		rt.respondError(w, r, err)
		return
	}
	out, err := rt.services.UploadURL.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) createRating(w http.ResponseWriter, r *http.Request) {
	var input createrating.Input
	if err := decodeBody(r, &input, false); err != nil {
		rt.respondError(w, r, err)
		return
	}
	out, err := rt.services.Rating.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (rt *Router) getRecommendations(w http.ResponseWriter, r *http.Request) {
	input := getrestaurantrecommendations.Input{UserID: chi.URLParam(r, "userId")}
	out, err := rt.services.Recommendations.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) createOrder(w http.ResponseWriter, r *http.Request) {
	var input createorder.Input
	if err := decodeBody(r, &input, false); err != nil {
		rt.respondError(w, r, err)
		return
	}
	out, err := rt.services.CreateOrder.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) getOrders(w http.ResponseWriter, r *http.Request) {
	input := getorders.Input{UserID: r.URL.Query().Get("userId")}
	out, err := rt.services.GetOrders.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var input updateorderstatus.Input
	if err := decodeBody(r, &input, false); err != nil {
		rt.respondError(w, r, err)
		return
	}
	out, err := rt.services.UpdateStatus.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) processPayment(w http.ResponseWriter, r *http.Request) {
	var input processpayment.Input
	if err := decodeBody(r, &input, false); err != nil {
		rt.respondError(w, r, err)
		return
	}
	out, err := rt.services.Payment.Execute(r.Context(), &input)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// respondError maps err to its HTTP status. Server-side failures are logged
// with their details; clients only see the message.
func (rt *Router) respondError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := apperrors.AsStandardError(err)
	status := apperrors.HTTPStatus(stdErr.Code)
	if status >= http.StatusInternalServerError {
		rt.logger.Error("request failed", map[string]interface{}{
			"path":    r.URL.Path,
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}
	writeJSON(w, status, errorBody(stdErr.Message))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody reads a JSON body into dest. An empty body is an error unless
// optional is set.
func decodeBody(r *http.Request, dest interface{}, optional bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dest)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && optional:
		return nil
	case errors.Is(err, io.EOF):
		return apperrors.NewValidationError("request body is required")
	default:
		return apperrors.NewValidationError("invalid request body: " + err.Error())
	}
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
