package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/middleware"
)

// registerAPI wires the admin-grid and storefront JSON endpoints.
func registerAPI(e *echo.Echo, d Deps) {
	h := d.Handler
	authCheck := middleware.AuthCheck(d.Auth)
	api := e.Group("/api")

	// Users.
	api.GET("/users/:id", h.UserDetail)
	api.GET("/users", h.ListView("v_allUsers"), authCheck)
	api.GET("/nonRegisterUsers", h.ListView("v_NonRegisterUsers"))
	api.GET("/activeUsers", h.ListView("v_ActiveUsers"))
	api.GET("/pendingUsers", h.ListView("v_pendingUsers"))
	api.GET("/usersBlackList", h.ListView("v_usersBlackList"))
	api.POST("/usersProfileUpdate", h.UsersProfileUpdate)
	api.POST("/userPasswordChange", h.UserPasswordChange)
	api.POST("/usersCreate", h.UsersCreate)
	api.POST("/userAccountAccept", h.UserAccountAccept)
	api.POST("/userAccountFrezee", h.UserAccountFreeze, authCheck)
	api.POST("/userAccountBlackList", h.UserAccountBlackList)

	// Categories.
	api.GET("/category/:id", h.CategoryDetail)
	api.GET("/categoryStatistics/:id", h.CategoryStatisticsByID)
	api.GET("/categoryStatistics", h.ListView("v_categoryStatistics"))
	api.GET("/categories", h.ListView("v_allCategories"))
	api.GET("/activeCategories", h.ListView("v_activeCategories"))
	api.GET("/passiveCategories", h.ListView("v_passiveCategories"))
	api.GET("/mainPageCategories", h.ListView("v_mainPageCategories"))
	api.GET("/nonMainPageCategories", h.ListView("v_nonMainPageCategories"))
	api.GET("/menuCategories", h.ListView("v_MenuCategories"))
	api.GET("/nonMenuCategories", h.ListView("v_nonMenuCategories"))
	api.POST("/createCategories", h.CreateCategories)
	api.POST("/categoriesFrezee", h.CategoriesFreeze)
	api.POST("/deleteCategory", h.DeleteCategory)
	api.POST("/updateCategorySearchOrder", h.UpdateCategorySearchOrder)

	// Sliders.
	api.GET("/sliders", h.ListView("v_allSliders"))
	api.GET("/activeSliders", h.ListView("v_activeSliders"))
	api.GET("/inactiveSliders", h.ListView("v_inactiveSliders"))
	api.POST("/createSlider", h.CreateSlider)
	api.POST("/updateSlider", h.UpdateSlider)
	api.POST("/updateSliderOrder", h.UpdateSliderOrder)
	api.POST("/deleteSlider", h.DeleteSlider)
	api.POST("/activateSlider", h.ActivateSlider)
	api.POST("/deactivateSlider", h.DeactivateSlider)

	// References.
	api.GET("/reference", h.ListView("v_allReference"))
	api.GET("/activeReferences", h.ListView("v_activeReferences"))
	api.GET("/inactiveReferences", h.ListView("v_inactiveReferences"))
	api.POST("/createReference", h.CreateReference)
	api.POST("/updateReference", h.UpdateReference)
	api.POST("/deleteReference", h.DeleteReference)
	api.POST("/activateReference", h.ActivateReference)
	api.POST("/deactivateReference", h.DeactivateReference)

	// Products.
	api.GET("/products", h.ListView("v_allProducts"))
	api.GET("/activeProducts", h.ListView("v_activeProducts"))
	api.GET("/inactiveProducts", h.ListView("v_inactiveProducts"))
	api.GET("/populerProducts", h.ListView("v_populerProducts"))
	api.POST("/createProduct", h.CreateProduct)
	api.POST("/changeProductCategory", h.ChangeProductCategory)
	api.POST("/changeProductDesc", h.ChangeProductDesc)
	api.POST("/changeProductOrder", h.ChangeProductOrder)
	api.POST("/changeProductPrice", h.ChangeProductPrice)
	api.POST("/changeProductPublish", h.ChangeProductPublish)
	api.POST("/changeProductSearchImportant", h.ChangeProductSearchImportant)
	api.POST("/changeProductShowMainPage", h.ChangeProductShowMainPage)
	api.POST("/changeProductShowMostPopuler", h.ChangeProductShowMostPopular)
	api.POST("/changeProductText", h.ChangeProductText)
	api.POST("/changeProductTitle", h.ChangeProductTitle)
	api.POST("/changeProductStock", h.ChangeProductStock)
	api.POST("/createProductStock", h.CreateProductStock)
	api.POST("/addProductRelaited", h.AddProductRelated)
	api.POST("/deleteProductRelaited", h.DeleteProductRelated)
	api.POST("/deleteProduct", h.DeleteProduct)
	api.POST("/productAccept", h.ProductAccept)
	api.POST("/activateProduct", h.ActivateProduct)
	api.POST("/deactivateProduct", h.DeactivateProduct)

	// Product images and comments.
	api.POST("/createProductImg", h.CreateProductImg, authCheck)
	api.POST("/deleteProductImg", h.DeleteProductImg)
	api.POST("/activateProductImg", h.ActivateProductImg)
	api.POST("/deactivateProductImg", h.DeactivateProductImg)
	api.POST("/updateProductImgOrder", h.UpdateProductImgOrder)
	api.GET("/allProductImg", h.ListView("v_allProductImg"))
	api.GET("/activeProductImg", h.ListView("v_activeProductImg"))
	api.GET("/inactiveProductImg", h.ListView("v_inactiveProductImg"))
	api.GET("/allProductComments", h.ListView("v_allProductComments"))
	api.GET("/allProductDetailComments", h.ListView("v_allProductDetailComments"))
	api.GET("/inactiveProductComments", h.ListView("v_inactiveProductComments"))
	api.GET("/activeProductComments", h.ListView("v_activeProductComments"))

	// Sellers.
	api.GET("/sellerProductDetails", h.ListView("v_sellerProductDetail"))
	api.POST("/createSeller", h.CreateSeller)
	api.POST("/deactivateSeller", h.DeactivateSeller)
	api.POST("/changeSellerBanner", h.ChangeSellerBanner)
	api.POST("/changeSellerInfo", h.ChangeSellerInfo)
	api.POST("/changeSellerLogo", h.ChangeSellerLogo)
	api.POST("/changeSellerName", h.ChangeSellerName)
	api.POST("/changeSellerScore", h.ChangeSellerScore)
	api.POST("/changeSellerStatus", h.ChangeSellerStatus)
	api.POST("/changeSellerSubdomain", h.ChangeSellerSubdomain)
	api.POST("/addSellerProduct", h.AddSellerProduct)
	api.POST("/addSellerCategory", h.AddSellerCategory)
	api.POST("/addSellerBadges", h.AddSellerBadges)
	api.POST("/deleteSellerProduct", h.DeleteSellerProduct)
	api.POST("/deleteSellerCategory", h.DeleteSellerCategory)
	api.POST("/deleteSellerBadges", h.DeleteSellerBadges)

	// Subscriptions and payment.
	api.GET("/activeSubscribe", h.ListView("v_activeSubscribe"))
	api.POST("/subs", h.Subs)
	api.POST("/payment", h.PaySubscription, authCheck)
	e.POST("/addNewSubs", h.AddNewSubs)
}
