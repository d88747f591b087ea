package handler

import (
	"errors"
	"parking_manager/constants"
	"parking_manager/database"
	"parking_manager/helper"
	"parking_manager/model"
	"parking_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(c *fiber.Ctx) error {
	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	var vehicles []model.Vehicle
	if err := database.DB.Where("user_id = ?", user.ID).Find(&vehicles).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	user.Vehicles = vehicles

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func EditProfile(c *fiber.Ctx) error {
	db := database.DB
	_, user, _ := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "User does not exist", errors.New("no user for token"))
	}

	input, ok := c.Locals("editProfileInput").(model.EditProfileInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	if !helper.CheckPasswordHash(input.CurrentPassword, user.Passhash) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Current password is incorrect", errors.New("wrong current password"), "currentPassword")
	}

	if input.Username != user.Username {
		var count int64
		db.Model(&model.User{}).Where("username = ? AND id != ?", input.Username, user.ID).Count(&count)
		if count > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.USERNAME_EXISTS, errors.New("username taken"), "username")
		}
	}

	if input.NewPassword != nil {
		hash, err := helper.HashPassword(*input.NewPassword)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
		}
		user.Passhash = hash
	}

	user.Name = input.Name
	user.Address = input.Address
	user.Pincode = input.Pincode
	user.Username = input.Username

	if err := db.Save(user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

// GetUsers lists every registered user with vehicles for the admin dashboard.
func GetUsers(c *fiber.Ctx) error {
	_, _, isAdmin := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var filter model.FilterUser
	if err := c.QueryParser(&filter); err == nil && filter.SearchKey != "" {
		var users []model.User
		if err := database.DB.Preload("Vehicles").
			Where("username LIKE ? OR name LIKE ?", "%"+filter.SearchKey+"%", "%"+filter.SearchKey+"%").
			Find(&users).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, users)
	}

	var users []model.User
	query := database.DB.Preload("Vehicles").Where("is_admin = ?", false)
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var total int64
	database.DB.Model(&model.User{}).Where("is_admin = ?", false).Count(&total)

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       users,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	})
}
