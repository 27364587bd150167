package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/cocosip/go-huffman-codec/huffman"
	"github.com/cocosip/go-huffman-codec/internal/model"
	"github.com/cocosip/go-huffman-codec/internal/repo"
	"github.com/cocosip/go-huffman-codec/internal/service"
)

type TableHandler struct {
	svc *service.TableService
}

func NewTableHandler(s *service.TableService) *TableHandler {
	return &TableHandler{svc: s}
}

type weightReq struct {
	Symbol string  `json:"symbol"`
	Freq   float64 `json:"freq"`
}

type createTableReq struct {
	Alphabet []weightReq `json:"alphabet"`
	Text     *string     `json:"text"`
}

type encodeReq struct {
	Text string `json:"text"`
}

type decodeReq struct {
	Bits    string `json:"bits"`
	Symbols *int   `json:"symbols"`
}

type statsResp struct {
	Symbols       int     `json:"symbols"`
	TotalWeight   float64 `json:"total_weight"`
	WeightedBits  float64 `json:"weighted_bits"`
	AverageLength float64 `json:"average_length"`
	Entropy       float64 `json:"entropy"`
	Efficiency    float64 `json:"efficiency"`
	MaxLength     int     `json:"max_length"`
}

type tableResp struct {
	ID        string            `json:"id"`
	Codes     map[string]string `json:"codes"`
	CreatedAt time.Time         `json:"created_at"`
	Stats     *statsResp        `json:"stats,omitempty"`
}

func newTableResp(t *model.Table) tableResp {
	codes := make(map[string]string, t.Codes.Len())
	for _, e := range t.Codes.Entries() {
		codes[string(e.Symbol)] = string(e.Code)
	}
	return tableResp{ID: t.ID, Codes: codes, CreatedAt: t.CreatedAt}
}

var errBadRequest = errors.New("bad request")

func (h *TableHandler) Create(c *gin.Context) {
	var req createTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		created *service.Created
		err     error
	)
	switch {
	case req.Text != nil && req.Alphabet != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "give either alphabet or text, not both"})
		return
	case req.Text != nil:
		created, err = h.svc.CreateFromText(c.Request.Context(), *req.Text)
	case req.Alphabet != nil:
		var alphabet []huffman.WeightedSymbol
		alphabet, err = toAlphabet(req.Alphabet)
		if err == nil {
			created, err = h.svc.CreateFromAlphabet(c.Request.Context(), alphabet)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "alphabet or text is required"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	resp := newTableResp(created.Table)
	st := statsResp(created.Stats)
	resp.Stats = &st
	c.JSON(http.StatusCreated, resp)
}

func toAlphabet(ws []weightReq) ([]huffman.WeightedSymbol, error) {
	out := make([]huffman.WeightedSymbol, 0, len(ws))
	for i, w := range ws {
		r, size := utf8.DecodeRuneInString(w.Symbol)
		if size == 0 || size != len(w.Symbol) || !utf8.ValidString(w.Symbol) {
			return nil, fmt.Errorf("%w: alphabet[%d]: symbol must be exactly one character", errBadRequest, i)
		}
		out = append(out, huffman.WeightedSymbol{Symbol: r, Freq: w.Freq})
	}
	return out, nil
}

func (h *TableHandler) GetByID(c *gin.Context) {
	t, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTableResp(t))
}

func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ids := make([]string, 0, len(tables))
	for _, t := range tables {
		ids = append(ids, t.ID)
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

func (h *TableHandler) Encode(c *gin.Context) {
	var req encodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stream, err := h.svc.Encode(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bits": string(stream.Bits), "symbols": stream.Symbols})
}

func (h *TableHandler) Decode(c *gin.Context) {
	var req decodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stream := huffman.Stream{Bits: huffman.Bits(req.Bits), Symbols: huffman.UnknownLength}
	if req.Symbols != nil {
		if *req.Symbols < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "symbols must not be negative"})
			return
		}
		stream.Symbols = *req.Symbols
	}
	text, err := h.svc.Decode(c.Request.Context(), c.Param("id"), stream)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

// writeError maps domain errors onto HTTP status codes
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
	case errors.Is(err, errBadRequest),
		errors.Is(err, huffman.ErrEmptyAlphabet),
		errors.Is(err, huffman.ErrInvalidWeight),
		errors.Is(err, huffman.ErrDuplicateSymbol),
		errors.Is(err, huffman.ErrUnknownSymbol),
		errors.Is(err, huffman.ErrIncompleteCode),
		errors.Is(err, huffman.ErrInvalidBit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
