package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"foodbot/internal/orders"
	"foodbot/models"
)

// handleGetProducts returns the full categorized catalog. All four category
// keys are always present, empty categories as empty arrays.
func (s *Server) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Menu())
}

type createProductRequest struct {
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photoUrl"`
	PhotoID     string  `json:"photoId"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	category, ok := models.ParseCategory(req.Category)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown category: "+req.Category)
		return
	}
	p, err := s.catalog.AddProduct(r.Context(), category, req.Name, req.Price, req.Description, req.PhotoURL, req.PhotoID)
	if err != nil {
		if models.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("create product", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// handleDeleteProduct removes a product by category and id. Deletion is
// idempotent: an absent product, an unknown category or a malformed id all
// answer success, matching the prior-existence-agnostic contract.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, ok := models.ParseCategory(vars["category"])
	if ok {
		if id, err := strconv.ParseInt(vars["id"], 10, 64); err == nil {
			if err := s.catalog.RemoveProduct(r.Context(), category, id); err != nil {
				s.log.Error("delete product", "error", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	o, err := s.orders.Submit(r.Context(), req)
	if err != nil {
		if models.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("submit order", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"orderId": o.ID})
}
