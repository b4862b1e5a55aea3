package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/turbo-items/app/query"
	"github.com/lysyi3m/turbo-items/app/store"
)

const (
	msgInvalidSort   = "Некорректное значение параметра sort. Используйте \"asc\" или \"desc\"."
	msgInvalidWindow = "Параметры start и limit должны быть неотрицательными целыми числами."
	msgMissingDates  = "Параметры startDate и endDate обязательны."
	msgInvalidDate   = "Некорректный формат даты."
	msgNotFound      = "Запись не найдена."
)

func NewHandler(reader store.Reader, feedURL, version string) *Handler {
	return &Handler{
		store:   reader,
		feedURL: feedURL,
		version: version,
	}
}

func (h *Handler) ListItems(c *gin.Context) {
	start, err := intParam(c, "start", query.DefaultStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidWindow})
		return
	}
	limit, err := intParam(c, "limit", query.DefaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidWindow})
		return
	}
	sort := c.DefaultQuery("sort", query.DefaultSort)

	items, err := query.SortAndPaginate(h.store.Snapshot().Records, start, limit, sort)
	if err != nil {
		h.writeValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListItemsByDate(c *gin.Context) {
	items, err := query.FilterByRange(h.store.Snapshot().Records, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.writeValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetItem(c *gin.Context) {
	id := c.Param("uuid")

	item, err := query.FindByID(h.store.Snapshot().Records, id)
	if errors.Is(err, query.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
		return
	}
	if err != nil {
		slog.Error("Lookup failed", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) GetHealth(c *gin.Context) {
	generation := h.store.Snapshot()

	health := map[string]interface{}{
		"timestamp":  time.Now().In(time.Local).Format(time.RFC3339),
		"feed_url":   h.feedURL,
		"version":    h.version,
		"generation": generation.Number,
		"items":      len(generation.Records),
	}
	if !generation.IngestedAt.IsZero() {
		health["ingested_at"] = generation.IngestedAt.In(time.Local).Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) writeValidationError(c *gin.Context, err error) {
	var validationErr *query.ValidationError
	if !errors.As(err, &validationErr) {
		slog.Error("Query failed", "path", c.FullPath(), "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	slog.Debug("Rejected query", "path", c.FullPath(), "field", validationErr.Field, "error", err)

	message := msgInvalidDate
	switch validationErr.Field {
	case query.FieldSort:
		message = msgInvalidSort
	case query.FieldStart, query.FieldLimit:
		message = msgInvalidWindow
	case query.FieldDates:
		message = msgMissingDates
	}
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}

func intParam(c *gin.Context, name string, defaultValue int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}
