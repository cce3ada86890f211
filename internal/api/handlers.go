package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"grocery-assistant/internal/assistant"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/validation"
	"grocery-assistant/internal/models"
)

const maxBodyBytes = 64 << 10

type commandResponse struct {
	Message string `json:"message"`
	assistant.Reply
	Cart []models.CartItem `json:"cart"`
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total int               `json:"total"`
}

type priceResponse struct {
	Item   string             `json:"item"`
	Price  int                `json:"price"`
	Source models.PriceSource `json:"source,omitempty"`
}

// bind validates the raw body against schema before decoding it into out.
func bind(c echo.Context, schema *validation.Schema, out interface{}) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	if err := schema.Check(body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	return nil
}

func (s *Server) handleCommand(c echo.Context) error {
	var req commandRequest
	if err := bind(c, commandSchema, &req); err != nil {
		return err
	}

	reply := s.deps.Assistant.Handle(c.Request().Context(), req.Text)
	return c.JSON(http.StatusOK, commandResponse{
		Message: reply.Message(),
		Reply:   reply,
		Cart:    s.deps.Assistant.Cart().List(),
	})
}

func (s *Server) handlePrice(c echo.Context) error {
	var req priceRequest
	if err := bind(c, priceSchema, &req); err != nil {
		return err
	}

	quote, err := s.deps.Prices.Quote(c.Request().Context(), req.Item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, priceResponse{Item: quote.Item, Price: quote.Price, Source: quote.Source})
}

func (s *Server) handleSuggest(c echo.Context) error {
	var req suggestRequest
	if err := bind(c, suggestSchema, &req); err != nil {
		return err
	}

	res, err := s.deps.Suggestions.Suggest(c.Request().Context(), req.Input)
	if err != nil {
		return err
	}
	if res.Suggestions == nil {
		res.Suggestions = []models.Suggestion{}
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleSuggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.Assistant.Suggestions(c.Request().Context()))
}

func (s *Server) handleListCart(c echo.Context) error {
	items := s.deps.Assistant.Cart().List()
	total := 0
	for _, it := range items {
		total += it.Price * it.Quantity
	}
	return c.JSON(http.StatusOK, cartResponse{Items: items, Total: total})
}

func (s *Server) handleClearCart(c echo.Context) error {
	s.deps.Assistant.Cart().Clear()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleRemoveLine(c echo.Context) error {
	id := c.Param("id")
	if !s.deps.Assistant.Cart().RemoveByID(id) {
		return apperrors.NewItemNotFoundError(id)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSetQuantity(c echo.Context) error {
	var req quantityRequest
	if err := bind(c, quantitySchema, &req); err != nil {
		return err
	}

	id := c.Param("id")
	item, ok := s.deps.Assistant.Cart().SetQuantity(id, req.Quantity)
	if !ok {
		return apperrors.NewItemNotFoundError(id)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(c echo.Context) error {
	failed := make(map[string]string)
	for name, check := range s.deps.Checks {
		if err := check(c.Request().Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not ready",
			"checks": failed,
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}
