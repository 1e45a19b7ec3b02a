package handlers

import (
	"net/http"
	"strconv"
	"time"

	"asset-register/internal/database"
	"asset-register/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type assetRequest struct {
	AssetNo         string          `json:"asset_no" binding:"max=150"`
	DateAcquired    string          `json:"date_acquired" binding:"required,datetime=2006-01-02"`
	AssetClassID    uint            `json:"asset_class_id" binding:"required"`
	Description     string          `json:"description" binding:"required,max=150"`
	Location        string          `json:"location" binding:"max=150"`
	DepotCode       string          `json:"depot_code"`
	Quantity        int             `json:"quantity" binding:"gte=0"`
	Unit            string          `json:"unit" binding:"max=10"`
	Remarks         string          `json:"remarks" binding:"max=1000"`
	SerialNumber    string          `json:"serial_number" binding:"max=150"`
	Status          string          `json:"status"`
	AssetTagability string          `json:"asset_tagability" binding:"max=150"`
	Cost            decimal.Decimal `json:"cost"`
	Life            decimal.Decimal `json:"life"`
}

func (r assetRequest) input() (database.AssetInput, error) {
	acquired, err := time.Parse(dateLayout, r.DateAcquired)
	if err != nil {
		return database.AssetInput{}, &database.ValidationError{Field: "date_acquired", Msg: "must be YYYY-MM-DD"}
	}
	in := database.AssetInput{
		AssetNo:         r.AssetNo,
		DateAcquired:    acquired,
		AssetClassID:    r.AssetClassID,
		Description:     r.Description,
		Location:        r.Location,
		DepotCode:       r.DepotCode,
		Quantity:        r.Quantity,
		Unit:            r.Unit,
		Remarks:         r.Remarks,
		SerialNumber:    r.SerialNumber,
		AssetTagability: r.AssetTagability,
		Cost:            r.Cost,
		Life:            r.Life,
	}
	if r.Status != "" {
		status, err := models.ParseAssetStatus(r.Status)
		if err != nil {
			return database.AssetInput{}, err
		}
		in.Status = status
	}
	return in, nil
}

type assetResponse struct {
	*models.Asset
	StatusLabel string           `json:"status_label"`
	Valuation   models.Valuation `json:"valuation"`
}

func withValuation(c *gin.Context, asset *models.Asset) (assetResponse, error) {
	v, err := database.AssetValuation(db(c), asset)
	if err != nil {
		return assetResponse{}, err
	}
	return assetResponse{Asset: asset, StatusLabel: asset.Status.Label(), Valuation: v}, nil
}

func renderAsset(c *gin.Context, status int, asset *models.Asset) {
	resp, err := withValuation(c, asset)
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, status, resp)
}

//
// ASSET REGISTER
//

func ListAssets(c *gin.Context) {
	filter := database.AssetFilter{DepotCode: c.Query("depot")}
	if v := c.Query("asset_class_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset_class_id"})
			return
		}
		filter.AssetClassID = uint(id)
	}
	if v := c.Query("status"); v != "" {
		status, err := models.ParseAssetStatus(v)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Status = status
	}

	assets, err := database.ListAssets(db(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]assetResponse, 0, len(assets))
	for i := range assets {
		resp, err := withValuation(c, &assets[i])
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, resp)
	}
	render(c, http.StatusOK, out)
}

func GetAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	asset, err := database.GetAsset(db(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	renderAsset(c, http.StatusOK, asset)
}

func CreateAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}
	asset, err := database.CreateAsset(db(c), in, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	renderAsset(c, http.StatusCreated, asset)
}

func UpdateAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(c, err)
		return
	}
	asset, err := database.UpdateAsset(db(c), id, in, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	renderAsset(c, http.StatusOK, asset)
}

func DeleteAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := database.DeleteAsset(db(c), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// STATUS, DISPOSAL, TRANSFER
//

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func SetAssetStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	status, err := models.ParseAssetStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	// disposal has its own permission
	if status == models.StatusDisposed && !currentUser(c).HasPerm(models.PermDisposeAsset) {
		c.JSON(http.StatusForbidden, gin.H{"error": "missing permission " + string(models.PermDisposeAsset)})
		return
	}
	asset, err := database.SetAssetStatus(db(c), id, status, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	renderAsset(c, http.StatusOK, asset)
}

func DisposeAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	asset, err := database.DisposeAsset(db(c), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	renderAsset(c, http.StatusOK, asset)
}

type transferRequest struct {
	DepotCode string `json:"depot_code" binding:"required"`
	Location  string `json:"location" binding:"max=150"`
}

func TransferAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	asset, err := database.TransferAsset(db(c), id, req.DepotCode, req.Location, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	renderAsset(c, http.StatusOK, asset)
}

//
// DEPRECIATION
//

func ListDepreciation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := database.ListDepreciation(db(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, rows)
}

type depreciationRequest struct {
	Expense decimal.Decimal `json:"expense"`
}

func RecordDepreciation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req depreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	row, err := database.RecordDepreciation(db(c), id, req.Expense, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusCreated, row)
}

func DepreciateAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	row, err := database.DepreciateAsset(db(c), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusCreated, row)
}
