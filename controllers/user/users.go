package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/media"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

// GET /profile/
func GetProfile(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := identity.Profile(c.Request.Context(), views.CurrentUser(c))
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Render(c, http.StatusOK, "profile", "My profile", gin.H{"page": page})
	}
}

// GET|POST /profile/edit/
func UpdateProfile(identity *services.IdentityService, uploads *media.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := views.CurrentUser(c)
		page, err := identity.Profile(c.Request.Context(), user)
		if err != nil {
			views.Fail(c, err)
			return
		}
		if c.Request.Method != http.MethodPost {
			p := page.Profile
			views.Render(c, http.StatusOK, "profile_edit", "Edit profile", gin.H{
				"form": services.ProfileInput{
					FirstName: user.FirstName,
					LastName:  user.LastName,
					Bio:       p.Bio,
					Phone:     p.Phone,
					Address:   p.Address,
				},
			})
			return
		}

		var in services.ProfileInput
		if err := c.ShouldBind(&in); err != nil {
			views.Fail(c, errs.Validation("Invalid form submission.", nil))
			return
		}
		in.Avatar, err = uploads.SaveUpload(c, "avatar", models.AvatarUploadDir)
		if err == nil {
			err = identity.UpdateProfile(c.Request.Context(), user, in)
		}
		if err != nil {
			if !errs.Is(err, errs.KindValidation) {
				views.Fail(c, err)
				return
			}
			views.Render(c, http.StatusOK, "profile_edit", "Edit profile", gin.H{
				"form":   in,
				"errors": errs.FieldErrors(err),
			})
			return
		}
		views.Flash(c, "success", "Your profile has been updated!")
		c.Redirect(http.StatusFound, "/profile/")
	}
}
