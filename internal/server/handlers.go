package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/preview"
	"github.com/alnah/go-blockforge/internal/render"
)

var errNoBlockID = errors.New("blockId is required")

// Handler serves the JSON API. Every request carries the full document
// state; nothing is kept between requests.
type Handler struct {
	designer *blockforge.Designer
	page     preview.Options
}

// NewHandler creates a Handler. page configures standalone render output.
func NewHandler(d *blockforge.Designer, page preview.Options) *Handler {
	return &Handler{designer: d, page: page}
}

// stateBody is the document state as sent by clients.
type stateBody struct {
	Blocks []blockforge.Block `json:"blocks"`
	Store  *blockforge.Store  `json:"store"`
}

func (b stateBody) state() (blockforge.State, error) {
	return blockforge.NewState(b.Blocks, b.Store)
}

// StateResponse returns a document state with fresh suggestions.
type StateResponse struct {
	Blocks      []blockforge.Block     `json:"blocks"`
	Store       *blockforge.Store      `json:"store"`
	Suggestions blockforge.Suggestions `json:"suggestions"`
}

// HTMLResponse carries rendered markup. Page is set for standalone renders.
type HTMLResponse struct {
	HTML string `json:"html"`
	Page string `json:"page,omitempty"`
}

// ComponentsResponse lists the palette and icon-list choices.
type ComponentsResponse struct {
	Components []content.Spec  `json:"components"`
	Icons      []render.Choice `json:"icons"`
	Colours    []render.Choice `json:"colours"`
}

type parseRequest struct {
	blockforge.Payload
}

type pasteRequest struct {
	stateBody
	blockforge.Payload
}

type editRequest struct {
	stateBody
	HTML string `json:"html"`
}

type renderRequest struct {
	stateBody
	Standalone bool   `json:"standalone"`
	Title      string `json:"title"`
}

type applyRequest struct {
	stateBody
	Apply blockforge.ApplyRequest `json:"apply"`
}

type blockRequest struct {
	stateBody
	BlockID string `json:"blockId"`
	Delta   int    `json:"delta"`
}

func (h *Handler) respondState(c *gin.Context, s blockforge.State) {
	blocks := s.Blocks
	if blocks == nil {
		blocks = []blockforge.Block{}
	}
	respondOK(c, StateResponse{Blocks: blocks, Store: s.Store, Suggestions: h.designer.Suggest(s)})
}

// bind decodes the body into req and reports failures itself.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, err)
		return false
	}
	return true
}

// bindState decodes the body and builds its State.
func bindState(c *gin.Context, req any, body *stateBody) (blockforge.State, bool) {
	if !bind(c, req) {
		return blockforge.State{}, false
	}
	s, err := body.state()
	if err != nil {
		fail(c, err)
		return blockforge.State{}, false
	}
	return s, true
}

// Parse handles POST /api/parse: a clipboard payload becomes a new state.
func (h *Handler) Parse(c *gin.Context) {
	var req parseRequest
	if !bind(c, &req) {
		return
	}
	h.respondState(c, h.designer.Load(req.Payload))
}

// Paste handles POST /api/paste: payload blocks are appended to the state.
func (h *Handler) Paste(c *gin.Context) {
	var req pasteRequest
	s, ok := bindState(c, &req, &req.stateBody)
	if !ok {
		return
	}
	h.respondState(c, h.designer.Paste(s, req.Payload))
}

// Edit handles POST /api/edit: edited surface markup is reconciled.
func (h *Handler) Edit(c *gin.Context) {
	var req editRequest
	s, ok := bindState(c, &req, &req.stateBody)
	if !ok {
		return
	}
	h.respondState(c, h.designer.Edit(s, req.HTML))
}

// Suggest handles POST /api/suggest.
func (h *Handler) Suggest(c *gin.Context) {
	var req stateBody
	s, ok := bindState(c, &req, &req)
	if !ok {
		return
	}
	respondOK(c, gin.H{"suggestions": h.designer.Suggest(s)})
}

// Render handles POST /api/render.
func (h *Handler) Render(c *gin.Context) {
	var req renderRequest
	s, ok := bindState(c, &req, &req.stateBody)
	if !ok {
		return
	}
	resp := HTMLResponse{HTML: h.designer.Render(s)}
	if req.Standalone {
		opts := h.page
		if req.Title != "" {
			opts.Title = req.Title
		}
		page, err := preview.Document(resp.HTML, opts)
		if err != nil {
			respondError(c, http.StatusInternalServerError, CodeInternal, err)
			return
		}
		resp.Page = page
	}
	respondOK(c, resp)
}

// Editor handles POST /api/editor: the editing-surface markup.
func (h *Handler) Editor(c *gin.Context) {
	var req stateBody
	s, ok := bindState(c, &req, &req)
	if !ok {
		return
	}
	respondOK(c, HTMLResponse{HTML: h.designer.EditorSurface(s)})
}

// Apply handles POST /api/apply.
func (h *Handler) Apply(c *gin.Context) {
	var req applyRequest
	s, ok := bindState(c, &req, &req.stateBody)
	if !ok {
		return
	}
	next, err := s.ApplyComponent(req.Apply)
	if err != nil {
		fail(c, err)
		return
	}
	h.respondState(c, next)
}

// Remove handles POST /api/remove.
func (h *Handler) Remove(c *gin.Context) {
	var req blockRequest
	s, ok := bindState(c, &req, &req.stateBody)
	if !ok {
		return
	}
	if req.BlockID == "" {
		fail(c, errNoBlockID)
		return
	}
	next, err := s.RemoveComponent(req.BlockID)
	if err != nil {
		fail(c, err)
		return
	}
	h.respondState(c, next)
}

// Indent handles POST /api/indent.
func (h *Handler) Indent(c *gin.Context) {
	var req blockRequest
	s, ok := bindState(c, &req, &req.stateBody)
	if !ok {
		return
	}
	if req.BlockID == "" {
		fail(c, errNoBlockID)
		return
	}
	next, err := s.Indent(req.BlockID, req.Delta)
	if err != nil {
		fail(c, err)
		return
	}
	h.respondState(c, next)
}

// Readability handles POST /api/readability.
func (h *Handler) Readability(c *gin.Context) {
	var req stateBody
	s, ok := bindState(c, &req, &req)
	if !ok {
		return
	}
	respondOK(c, h.designer.Analyze(s))
}

// Components handles GET /api/components.
func (h *Handler) Components(c *gin.Context) {
	respondOK(c, ComponentsResponse{
		Components: content.Catalogue,
		Icons:      render.Icons,
		Colours:    render.Colours,
	})
}

// HealthCheck handles GET /healthcheck.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
