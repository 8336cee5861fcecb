package v1

import (
	"errors"
	"net/http"
	"strconv"

	"go-benefit-recommender/internal/delivery/http/response"
	"go-benefit-recommender/internal/domain"
	"go-benefit-recommender/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// PreviewRequest carries an offer that has not been stored.
type PreviewRequest struct {
	Title          string  `json:"title" binding:"max=500,no_control" example:"Senior Java Developer"`
	Description    string  `json:"description" binding:"no_control"`
	ContractType   string  `json:"contract_type" binding:"max=100,no_control" example:"CDI"`
	WorkMode       string  `json:"work_mode" binding:"max=100,no_control" example:"HYBRID"`
	SalaryMin      float64 `json:"salary_min" example:"6000"`
	SalaryMax      float64 `json:"salary_max" binding:"omitempty,gtefield=SalaryMin" example:"8000"`
	MaxSuggestions int     `json:"max_suggestions" example:"8"`
}

func (r PreviewRequest) toOffer() *domain.Offer {
	return &domain.Offer{
		Title:        r.Title,
		Description:  r.Description,
		ContractType: r.ContractType,
		WorkMode:     r.WorkMode,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
	}
}

// SaveBenefitsRequest lists the suggestion names to keep for an offer.
type SaveBenefitsRequest struct {
	Names []string `json:"names" binding:"required,min=1,max=50,dive,required,max=120,benefit_name" example:"Remote work allowance,Flexible hours"`
}

type SuggestionHandler struct {
	suggestionUC domain.SuggestionUsecase
}

// NewSuggestionHandler registers the suggestion and saved benefit routes
func NewSuggestionHandler(api *gin.RouterGroup, suggestionUC domain.SuggestionUsecase) {
	handler := &SuggestionHandler{
		suggestionUC: suggestionUC,
	}

	api.POST("/suggestions/preview", handler.Preview)
	api.GET("/offers/:id/suggestions", handler.SuggestForOffer)
	api.POST("/offers/:id/benefits", handler.SaveBenefits)
	api.GET("/offers/:id/benefits", handler.ListBenefits)
}

// Preview godoc
// @Summary      Preview benefit suggestions
// @Description  Rank benefits for an offer given in the request body. Nothing is stored.
// @Tags         suggestions
// @Accept       json
// @Produce      json
// @Param        offer  body      PreviewRequest  true  "Offer fields and limit"
// @Success      200    {object}  response.Response{data=[]domain.Suggestion}
// @Failure      400    {object}  response.Response
// @Failure      413    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /suggestions/preview [post]
func (h *SuggestionHandler) Preview(c *gin.Context) {
	var req PreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	suggestions, err := h.suggestionUC.Preview(c.Request.Context(), req.toOffer(), req.MaxSuggestions)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Benefit suggestions", suggestions)
}

// SuggestForOffer godoc
// @Summary      Suggest benefits for a stored offer
// @Description  Rank benefits for an existing offer. Results are cached per offer content.
// @Tags         suggestions
// @Produce      json
// @Param        id     path      int  true   "Offer ID"
// @Param        limit  query     int  false  "Maximum number of suggestions (default 8)"
// @Success      200    {object}  response.Response{data=[]domain.Suggestion}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      503    {object}  response.Response
// @Router       /offers/{id}/suggestions [get]
func (h *SuggestionHandler) SuggestForOffer(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid limit"))
			return
		}
		limit = n
	}

	suggestions, err := h.suggestionUC.SuggestForOffer(c.Request.Context(), id, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Benefit suggestions", suggestions)
}

// SaveBenefits godoc
// @Summary      Save selected benefits
// @Description  Replace the saved benefits of an offer with the named suggestions
// @Tags         benefits
// @Accept       json
// @Produce      json
// @Param        id        path      int                  true  "Offer ID"
// @Param        benefits  body      SaveBenefitsRequest  true  "Suggestion names"
// @Success      200       {object}  response.Response{data=[]domain.Suggestion}
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      503       {object}  response.Response
// @Router       /offers/{id}/benefits [post]
func (h *SuggestionHandler) SaveBenefits(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}

	var req SaveBenefitsRequest
	if !bindJSON(c, &req) {
		return
	}

	saved, err := h.suggestionUC.SaveSelection(c.Request.Context(), id, req.Names)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Benefits saved", saved)
}

// ListBenefits godoc
// @Summary      List saved benefits
// @Tags         benefits
// @Produce      json
// @Param        id   path      int  true  "Offer ID"
// @Success      200  {object}  response.Response{data=[]domain.SavedBenefit}
// @Failure      400  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /offers/{id}/benefits [get]
func (h *SuggestionHandler) ListBenefits(c *gin.Context) {
	id, ok := offerID(c)
	if !ok {
		return
	}

	saved, err := h.suggestionUC.ListSaved(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved benefits", saved)
}

func offerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return 0, false
	}
	return id, true
}

// bindJSON reports validation failures field by field and anything else as a bad body.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.Error(validationErrs)
	} else {
		c.Error(apperror.BadRequest("Invalid request body"))
	}
	return false
}
