package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"strukpos/models"
	"strukpos/pkg/receipt"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// masked bank accounts look like a star run with a short visible tail
var maskedAccountRE = regexp.MustCompile(`^\*{8,}\d{3,4}$`)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/extract", extractHandler)
	authGroup.GET("/receipts", listReceiptsHandler)
	authGroup.GET("/receipts/:id", getReceiptHandler)
	authGroup.GET("/mappings", listMappingsHandler)
	authGroup.POST("/mappings", createMappingHandler)
	authGroup.DELETE("/mappings/:id", deleteMappingHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// parseBankParam reads the caller-selected receipt layout. Unknown values are
// passed through; the engine handles them with its generic rules.
func parseBankParam(c *gin.Context) receipt.BankType {
	v := strings.ToUpper(strings.TrimSpace(c.PostForm("bank")))
	if v == "" {
		v = string(receipt.BankBCA)
	}
	return receipt.BankType(v)
}

func parsePaperParam(c *gin.Context) receipt.PaperSize {
	if c.PostForm("paper") == string(receipt.Paper80) {
		return receipt.Paper80
	}
	return receipt.Paper58
}

// extractHandler receives one receipt image, runs the extraction pipeline and
// stores both the upload and the structured result.
func extractHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	bank := parseBankParam(c)
	paper := parsePaperParam(c)

	baseDir := uploadBaseDir()
	relPath := "receipts/" + file.Filename
	fullPath := filepath.Join(baseDir, relPath)
	if err := os.MkdirAll(filepath.Join(baseDir, "receipts"), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	up := models.Upload{
		UserID:      user.ID,
		FileName:    file.Filename,
		StorePath:   relPath,
		ContentType: file.Header.Get("Content-Type"),
		BankType:    string(bank),
		PaperSize:   string(paper),
	}
	if err := db.Create(&up).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}

	rec, rawText, err := pipeline.ExtractFile(fullPath, bank, paper)
	if err != nil {
		// The engine still hands back a placeholder record; store it so the
		// upload has a reviewable row, but flag the upload itself.
		up.Failed = true
		up.FailedReason = err.Error()
		db.Save(&up)
	}

	rr := receiptToModel(user.ID, &up, rec, rawText)
	if err != nil {
		rr.NeedsReview = true
		rr.ReviewNote = "DECODE_ERROR: " + err.Error()
	}
	if err := db.Create(&rr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	autosaveMapping(rec)

	c.JSON(http.StatusOK, gin.H{"id": rr.ID, "upload_id": up.ID, "record": rec, "needs_review": rr.NeedsReview})
}

// receiptToModel flattens an engine record into its persisted form, flagging
// results that parsed but cannot be correct.
func receiptToModel(userID uint, up *models.Upload, rec receipt.Record, rawText string) models.ReceiptRecord {
	upID := up.ID
	rr := models.ReceiptRecord{
		UserID:          userID,
		UploadID:        &upID,
		Date:            rec.Date,
		Time:            rec.Time,
		SenderName:      rec.SenderName,
		ReceiverName:    rec.ReceiverName,
		Amount:          rec.Amount,
		ReceiverBank:    string(rec.ReceiverBank),
		ReceiverAccount: rec.ReceiverAccount,
		ReferenceNumber: rec.ReferenceNumber,
		AdminFee:        rec.AdminFee,
		PaperSize:       string(rec.PaperSize),
		BankType:        string(rec.BankType),
		RawText:         rawText,
	}
	if rec.Amount == 0 {
		rr.NeedsReview = true
		rr.ReviewNote = "VALIDATION_ERROR: amount is zero"
	}
	return rr
}

// autosaveMapping records a successfully extracted masked account against its
// receiver name so later garbled receipts can recover it from history.
func autosaveMapping(rec receipt.Record) {
	name := strings.ToUpper(strings.TrimSpace(rec.ReceiverName))
	if name == "" || name == "NAMA PENERIMA" {
		return
	}
	if !maskedAccountRE.MatchString(rec.ReceiverAccount) {
		return
	}
	var m models.AccountMapping
	if err := db.Where("receiver_name = ?", name).First(&m).Error; err == nil {
		if m.MaskedAccount != rec.ReceiverAccount {
			m.MaskedAccount = rec.ReceiverAccount
			m.BankCode = string(rec.ReceiverBank)
			db.Save(&m)
		}
		return
	}
	db.Create(&models.AccountMapping{
		ReceiverName:  name,
		MaskedAccount: rec.ReceiverAccount,
		BankCode:      string(rec.ReceiverBank),
	})
}

// listReceiptsHandler lists recent extractions for the authenticated user
// (admin sees all).
func listReceiptsHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var items []models.ReceiptRecord
	q := db.Model(&models.ReceiptRecord{})
	if role != "administrator" {
		q = q.Where("user_id = ?", user.ID)
	}
	if v := c.Query("needs_review"); v == "true" {
		q = q.Where("needs_review = ?", true)
	}
	if err := q.Order("id desc").Limit(200).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// getReceiptHandler returns a single extraction if admin or owner.
func getReceiptHandler(c *gin.Context) {
	role, _ := c.Get("role")
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id := c.Param("id")
	var rr models.ReceiptRecord
	if err := db.First(&rr, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if role != "administrator" && rr.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, rr)
}

func listMappingsHandler(c *gin.Context) {
	var items []models.AccountMapping
	if err := db.Order("receiver_name").Limit(500).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func createMappingHandler(c *gin.Context) {
	var req struct {
		ReceiverName  string `json:"receiver_name" binding:"required"`
		MaskedAccount string `json:"masked_account" binding:"required"`
		BankCode      string `json:"bank_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !maskedAccountRE.MatchString(req.MaskedAccount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "masked_account must be a star run followed by 3-4 digits"})
		return
	}
	name := strings.ToUpper(strings.TrimSpace(req.ReceiverName))
	m := models.AccountMapping{ReceiverName: name, MaskedAccount: req.MaskedAccount, BankCode: strings.ToUpper(req.BankCode)}
	if err := db.Where("receiver_name = ?", name).FirstOrCreate(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	// FirstOrCreate keeps an existing row; apply the new account explicitly
	if m.MaskedAccount != req.MaskedAccount || m.BankCode != strings.ToUpper(req.BankCode) {
		m.MaskedAccount = req.MaskedAccount
		m.BankCode = strings.ToUpper(req.BankCode)
		db.Save(&m)
	}
	c.JSON(http.StatusOK, gin.H{"id": m.ID})
}

func deleteMappingHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	res := db.Delete(&models.AccountMapping{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "mapping not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := RegisterUser(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	// Resolve role name from RoleID (we only store role_id).
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}
