package inout

type LoginReq struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Captcha  string `json:"captcha" form:"captcha" binding:"required"`
}

type LoginRes struct {
	AccessToken string `json:"accessToken"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" binding:"required,min=6,max=32"`
}
