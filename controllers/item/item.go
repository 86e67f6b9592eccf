package itemController

import (
	"log"

	"rateapp/database"
	"rateapp/middleware"
	"rateapp/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateItemRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type UpdateItemRequest struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

// ListItems returns all items, newest first
func ListItems(c *fiber.Ctx) error {
	db := database.Database.Db

	items := []models.Item{}
	if err := db.Order("created_at DESC").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch items!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Items fetched!", items)
}

// CreateItem creates a new item. Any authenticated participant may create one.
func CreateItem(c *fiber.Ctx) error {
	reqData := c.Locals("validatedItem").(*CreateItemRequest)

	db := database.Database.Db

	// Item codes are unique across all items
	if err := db.Where("code = ?", reqData.Code).First(&models.Item{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Item code already exists!", nil)
	}

	item := models.Item{
		Code: reqData.Code,
		Name: reqData.Name,
	}
	if err := db.Create(&item).Error; err != nil {
		log.Printf("Error creating item: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Item created successfully!", item)
}

// UpdateItem edits an item's code or name (admin only)
func UpdateItem(c *fiber.Ctx) error {
	reqData := c.Locals("validatedItemUpdate").(*UpdateItemRequest)
	itemId := c.Params("id")

	db := database.Database.Db

	var item models.Item
	if err := db.Where("id = ?", itemId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	if reqData.Code != nil {
		var existing models.Item
		if err := db.Where("code = ? AND id <> ?", *reqData.Code, item.ID).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Item code already exists!", nil)
		}
		item.Code = *reqData.Code
	}
	if reqData.Name != nil {
		item.Name = *reqData.Name
	}

	if err := db.Save(&item).Error; err != nil {
		log.Printf("Error updating item: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item updated successfully!", item)
}

// DeleteItem removes an item and all of its ratings (admin only)
func DeleteItem(c *fiber.Ctx) error {
	itemId := c.Params("id")

	db := database.Database.Db

	var item models.Item
	if err := db.Where("id = ?", itemId).First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		log.Printf("Error deleting item: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item deleted successfully!", nil)
}
