package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "github.com/safar/go-paper-store/internal/log"
	"github.com/safar/go-paper-store/internal/store"
	"github.com/safar/go-paper-store/internal/validate"
)

type PaperHandler struct {
	Catalog Catalog
}

type priceRangeRequest struct {
	MinimumRange decimal.NullDecimal `json:"minimumRange"`
	MaximumRange decimal.NullDecimal `json:"maximumRange"`
}

type paperFilterRequest struct {
	Pagination *store.PageRequest `json:"pagination"`
	PriceRange *priceRangeRequest `json:"priceRange"`
	// Comma separated property ids, e.g. "1,2,3".
	PaperPropertiesIDs string `json:"paperPropertiesIds"`
	SearchFilter       string `json:"searchFilter"`
}

type paperRequest struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Discontinued bool            `json:"discontinued"`
	PropertyIDs  []int64         `json:"propertyIds"`
}

func (r paperRequest) input() store.PaperInput {
	return store.PaperInput{
		Name:         r.Name,
		Price:        r.Price,
		Stock:        r.Stock,
		Discontinued: r.Discontinued,
		PropertyIDs:  r.PropertyIDs,
	}
}

// GET /api/papers/:pageNumber
func (h *PaperHandler) List(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Params("pageNumber"))
	if err != nil {
		return respondError(c, "papers.list", validate.New("pageNumber", validate.PageNumber))
	}

	papers, err := h.Catalog.ListPapers(c.UserContext(), store.PaperQuery{
		PageRequest: store.PageRequest{Page: page, PageItems: c.QueryInt("pageItems")},
		Search:      c.Query("searchTerm"),
		PropertyID:  int64(c.QueryInt("propertyId")),
	})
	if err != nil {
		return respondError(c, "papers.list", err)
	}
	return c.JSON(papers)
}

// POST /api/papers/filter
func (h *PaperHandler) Filter(c *fiber.Ctx) error {
	var req paperFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "papers.filter", badBody())
	}

	f := store.PaperFilter{
		Search:      req.SearchFilter,
		PropertyIDs: validate.IDList(req.PaperPropertiesIDs),
	}
	if req.Pagination != nil {
		f.PageRequest = *req.Pagination
	}
	if req.PriceRange != nil {
		f.MinPrice = req.PriceRange.MinimumRange
		f.MaxPrice = req.PriceRange.MaximumRange
	}

	papers, err := h.Catalog.GetPapersByFilter(c.UserContext(), f)
	if err != nil {
		return respondError(c, "papers.filter", err)
	}
	return c.JSON(papers)
}

// GET /api/papers/details/:paperId
func (h *PaperHandler) Details(c *fiber.Ctx) error {
	id, err := pathID(c, "paperId")
	if err != nil {
		return respondError(c, "papers.details", err)
	}
	paper, err := h.Catalog.GetPaper(c.UserContext(), id)
	if err != nil {
		return respondError(c, "papers.details", err)
	}
	return c.JSON(paper)
}

// GET /api/papers/pricerange
func (h *PaperHandler) PriceRange(c *fiber.Ctx) error {
	priceRange, err := h.Catalog.GetPriceRange(c.UserContext())
	if err != nil {
		return respondError(c, "papers.pricerange", err)
	}
	return c.JSON(priceRange)
}

// POST /api/admin/papers
func (h *PaperHandler) Create(c *fiber.Ctx) error {
	var req paperRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "admin.papers.create", badBody())
	}
	paper, err := h.Catalog.CreatePaper(c.UserContext(), req.input())
	if err != nil {
		return respondError(c, "admin.papers.create", err)
	}
	c.Status(fiber.StatusCreated)
	applog.Audit(c, "admin.papers.create", applog.Fields{"paper_id": paper.ID})
	return c.JSON(paper)
}

// PUT /api/admin/papers/:paperId
func (h *PaperHandler) Edit(c *fiber.Ctx) error {
	id, err := pathID(c, "paperId")
	if err != nil {
		return respondError(c, "admin.papers.edit", err)
	}
	var req paperRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, "admin.papers.edit", badBody())
	}
	paper, err := h.Catalog.EditPaper(c.UserContext(), id, req.ID, req.input())
	if err != nil {
		return respondError(c, "admin.papers.edit", err)
	}
	applog.Audit(c, "admin.papers.edit", applog.Fields{"paper_id": id})
	return c.JSON(paper)
}

// DELETE /api/admin/papers/:paperId
func (h *PaperHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "paperId")
	if err != nil {
		return respondError(c, "admin.papers.delete", err)
	}
	if err := h.Catalog.DeletePaper(c.UserContext(), id); err != nil {
		return respondError(c, "admin.papers.delete", err)
	}
	c.Status(fiber.StatusNoContent)
	applog.Audit(c, "admin.papers.delete", applog.Fields{"paper_id": id})
	return nil
}

// POST /api/admin/papers/:paperId/properties/:propertyId
func (h *PaperHandler) AddProperty(c *fiber.Ctx) error {
	paperID, propertyID, err := junctionParams(c)
	if err != nil {
		return respondError(c, "admin.papers.property.add", err)
	}
	if err := h.Catalog.AddPropertyToPaper(c.UserContext(), paperID, propertyID); err != nil {
		return respondError(c, "admin.papers.property.add", err)
	}
	c.Status(fiber.StatusNoContent)
	applog.Audit(c, "admin.papers.property.add", applog.Fields{"paper_id": paperID, "property_id": propertyID})
	return nil
}

// DELETE /api/admin/papers/:paperId/properties/:propertyId
func (h *PaperHandler) RemoveProperty(c *fiber.Ctx) error {
	paperID, propertyID, err := junctionParams(c)
	if err != nil {
		return respondError(c, "admin.papers.property.remove", err)
	}
	if err := h.Catalog.RemovePropertyFromPaper(c.UserContext(), paperID, propertyID); err != nil {
		return respondError(c, "admin.papers.property.remove", err)
	}
	c.Status(fiber.StatusNoContent)
	applog.Audit(c, "admin.papers.property.remove", applog.Fields{"paper_id": paperID, "property_id": propertyID})
	return nil
}

func junctionParams(c *fiber.Ctx) (int64, int64, error) {
	paperID, err := pathID(c, "paperId")
	if err != nil {
		return 0, 0, err
	}
	propertyID, err := pathID(c, "propertyId")
	if err != nil {
		return 0, 0, err
	}
	return paperID, propertyID, nil
}
