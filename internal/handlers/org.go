package handlers

import (
	"net/http"
	"strconv"

	"asset-register/internal/database"
	"asset-register/internal/models"

	"github.com/gin-gonic/gin"
)

type nameRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

//
// COMPANIES
//

func ListCompanies(c *gin.Context) {
	companies, err := database.ListCompanies(db(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, companies)
}

func GetCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	company, err := database.GetCompany(db(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, company)
}

func CreateCompany(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	company, err := database.CreateCompany(db(c), req.Name, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusCreated, company)
}

func UpdateCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	company, err := database.UpdateCompany(db(c), id, req.Name, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, company)
}

func DeleteCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := database.DeleteCompany(db(c), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// DEPOTS
//

type depotRequest struct {
	Code           string             `json:"code"`
	Name           string             `json:"name" binding:"required,max=150"`
	CompanyID      uint               `json:"company_id" binding:"required"`
	MapCoordinates models.Coordinates `json:"map_coordinates"`
}

func (r depotRequest) input() database.DepotInput {
	return database.DepotInput{
		Code:           r.Code,
		Name:           r.Name,
		CompanyID:      r.CompanyID,
		MapCoordinates: r.MapCoordinates,
	}
}

func ListDepots(c *gin.Context) {
	var companyID uint
	if v := c.Query("company_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company_id"})
			return
		}
		companyID = uint(id)
	}
	depots, err := database.ListDepots(db(c), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, depots)
}

func GetDepot(c *gin.Context) {
	depot, err := database.GetDepot(db(c), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, depot)
}

func CreateDepot(c *gin.Context) {
	var req depotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	depot, err := database.CreateDepot(db(c), req.input(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusCreated, depot)
}

func UpdateDepot(c *gin.Context) {
	var req depotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	depot, err := database.UpdateDepot(db(c), c.Param("code"), req.input(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, depot)
}

func DeleteDepot(c *gin.Context) {
	if err := database.DeleteDepot(db(c), c.Param("code"), currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// ASSET CLASSES
//

func ListAssetClasses(c *gin.Context) {
	classes, err := database.ListAssetClasses(db(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, classes)
}

func GetAssetClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	class, err := database.GetAssetClass(db(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, class)
}

func CreateAssetClass(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	class, err := database.CreateAssetClass(db(c), req.Name, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusCreated, class)
}

func UpdateAssetClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	class, err := database.UpdateAssetClass(db(c), id, req.Name, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, class)
}

func DeleteAssetClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := database.DeleteAssetClass(db(c), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
