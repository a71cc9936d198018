package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/review"
	"github.com/ppiankov/diatax/internal/taxonomy"
	"github.com/ppiankov/diatax/internal/validate"
)

type categoryInfo struct {
	Name     model.Category `json:"name"`
	Short    string         `json:"short"`
	Keywords int            `json:"keywords"`
}

type classifyRequest struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

type suggestRequest struct {
	Keywords []string `json:"keywords"`
}

type callView struct {
	CallID   string        `json:"call_id"`
	Keyword  string        `json:"highlight,omitempty"`
	Employee []review.Line `json:"employee"`
	Customer []review.Line `json:"customer"`
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// listCategories returns the classification targets with keyword counts.
func (s *Server) listCategories(c fiber.Ctx) error {
	var out []categoryInfo
	s.engine.Store().View(func(t *taxonomy.Taxonomy) {
		for _, cat := range model.Categories() {
			out = append(out, categoryInfo{Name: cat, Short: cat.Short(), Keywords: len(t.Keywords(cat))})
		}
	})
	return jsonSuccess(c, out)
}

func (s *Server) getTaxonomy(c fiber.Ctx) error {
	return jsonSuccess(c, s.engine.Store().Snapshot())
}

func (s *Server) listUnclassified(c fiber.Ctx) error {
	pending := s.engine.Pending()
	if pending == nil {
		pending = []string{}
	}
	return jsonSuccess(c, fiber.Map{
		"keywords": pending,
		"count":    len(pending),
	})
}

func (s *Server) keywordExamples(c fiber.Ctx) error {
	keyword, err := url.PathUnescape(c.Params("keyword"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword")
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid limit")
	}
	examples := s.engine.Examples(keyword, limit)
	if examples == nil {
		examples = []string{}
	}
	return jsonSuccess(c, fiber.Map{
		"keyword":  keyword,
		"examples": examples,
	})
}

// classify moves one unclassified keyword into a category.
func (s *Server) classify(c fiber.Ctx) error {
	var body classifyRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Keyword == "" {
		return jsonError(c, fiber.StatusBadRequest, "keyword is required")
	}

	target, ok := model.ParseCategory(body.Category)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, fmt.Sprintf("%s: %s", taxonomy.ErrUnknownCategory, body.Category))
	}

	if err := s.engine.Classify(body.Keyword, target); err != nil {
		return jsonFailure(c, err)
	}
	return jsonSuccess(c, fiber.Map{
		"keyword":  body.Keyword,
		"category": target,
	})
}

func (s *Server) scan(c fiber.Ctx) error {
	res, err := s.engine.Scan(c.Context())
	if err != nil {
		return jsonFailure(c, err)
	}
	if res.Added == nil {
		res.Added = []string{}
	}
	return jsonSuccess(c, res)
}

// suggest returns advisory categories; nothing is classified.
func (s *Server) suggest(c fiber.Ctx) error {
	var body suggestRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	out, err := s.engine.SuggestAll(c.Context(), body.Keywords)
	if err != nil {
		return jsonFailure(c, err)
	}
	return jsonSuccess(c, out)
}

func (s *Server) lint(c fiber.Ctx) error {
	issues, err := validate.NewLinter(&s.engine.Config().Lint).LintFile(s.engine.Store().Path())
	if err != nil {
		return jsonFailure(c, err)
	}
	if issues == nil {
		issues = []model.LintIssue{}
	}
	return jsonSuccess(c, issues)
}

func (s *Server) listCalls(c fiber.Ctx) error {
	return jsonSuccess(c, s.engine.Corpus().CallIDs())
}

// getCall returns both sides of a call, with match spans for ?highlight=.
func (s *Server) getCall(c fiber.Ctx) error {
	id := c.Params("id")
	employee, customer, err := s.engine.Call(id)
	if err != nil {
		return jsonFailure(c, err)
	}

	keyword := c.Query("highlight")
	return jsonSuccess(c, callView{
		CallID:   id,
		Keyword:  keyword,
		Employee: review.Lines(employee, keyword),
		Customer: review.Lines(customer, keyword),
	})
}

func (s *Server) analyzeCall(c fiber.Ctx) error {
	report, err := s.engine.AnalyzeCall(c.Context(), c.Params("id"))
	if err != nil {
		return jsonFailure(c, err)
	}
	return jsonSuccess(c, report)
}

// reviewPage renders the HTML review view. Without ?highlight= the first
// pending keyword is highlighted.
func (s *Server) reviewPage(c fiber.Ctx) error {
	return s.renderReview(c, fiber.StatusOK, c.Params("id"), c.Query("highlight"), "")
}

// reviewClassify handles the review page's classify form.
func (s *Server) reviewClassify(c fiber.Ctx) error {
	id := c.Params("id")
	keyword := c.FormValue("keyword")
	category := c.FormValue("category")

	target, ok := model.ParseCategory(category)
	if !ok {
		return s.renderReview(c, fiber.StatusBadRequest, id, keyword, "unknown category: "+category)
	}
	if err := s.engine.Classify(keyword, target); err != nil {
		return s.renderReview(c, statusFor(err), id, keyword, err.Error())
	}
	return s.renderReview(c, fiber.StatusOK, id, "", fmt.Sprintf("%q classified as %s", keyword, target.Short()))
}

func (s *Server) renderReview(c fiber.Ctx, status int, id, keyword, notice string) error {
	employee, customer, err := s.engine.Call(id)
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}

	pending := s.engine.Pending()
	if keyword == "" && len(pending) > 0 {
		keyword = pending[0]
	}

	var buf bytes.Buffer
	err = review.RenderPage(&buf, review.Page{
		CallID:     id,
		Keyword:    keyword,
		Employee:   employee,
		Customer:   customer,
		Categories: model.Categories(),
		Pending:    pending,
		Notice:     notice,
	})
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
