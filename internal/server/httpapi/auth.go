package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/server/validate"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (a *API) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}

	v := validate.New()
	v.Require("email", req.Email)
	v.Email("email", req.Email)
	v.Require("password", req.Password)
	if req.Password != "" {
		v.Length("password", req.Password, 6, 72)
	}
	v.Require("name", req.Name)
	v.Length("name", req.Name, 1, 100)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	user, err := a.Users.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusCreated, gin.H{"userId": user.ID, "requiresVerification": false})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}

	v := validate.New()
	v.Require("email", req.Email)
	v.Require("password", req.Password)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	pair, user, err := a.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"email":    user.Email,
			"avatar":   user.Avatar,
		},
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (a *API) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.fail(c, badBody())
		return
	}

	v := validate.New()
	v.Require("refreshToken", req.RefreshToken)
	if err := v.Err(); err != nil {
		a.fail(c, err)
		return
	}

	pair, err := a.Users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.ok(c, http.StatusOK, pair)
}
