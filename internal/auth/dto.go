package auth

type SignupRequest struct {
	LoginID  string `json:"loginId" form:"loginId" binding:"required,loginid"`
	Name     string `json:"name" form:"name" binding:"required,min=1,max=50"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=64"`
}

type LoginRequest struct {
	LoginID  string `json:"loginId" form:"loginId" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,max=64"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
