package main

import (
	"context"
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/payment"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/logger"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// .envはローカル開発用（無くてもよい）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Category{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.WishlistItem{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	images, err := storage.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("upload dir init failed", zap.Error(err))
	}
	authValidator := validator.NewAuthValidator()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, authValidator)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(userRepo, cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(userRepo, orderRepo, orderItemRepo, cartItemRepo, productRepo, txManager, gateway)
	wishlistUC := usecase.NewWishlistUsecase(userRepo, wishlistRepo, productRepo)
	adminProductUC := usecase.NewAdminProductUsecase(userRepo, productRepo, inventoryRepo, categoryRepo, auditRepo, images)
	adminOrderUC := usecase.NewAdminOrderUsecase(userRepo, orderRepo, orderItemRepo, productRepo, txManager, auditRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, auditRepo)
	adminStatsUC := usecase.NewAdminStatsUsecase(userRepo, productRepo, orderRepo)

	//初期ADMINを用意（環境変数があれば）
	seedAdmin(log, userRepo)

	//Handler生成とServer起動
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Wishlist:     handler.NewWishlistHandler(wishlistUC),
		AdminProduct: handler.NewAdminProductHandler(adminProductUC, productUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC, adminStatsUC),
	}

	e := server.New(cfg, log, h)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := server.Start(e, cfg); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// ADMIN_EMAIL / ADMIN_PASSWORD が設定されていれば管理者を作る。
// 既に居れば何もしない。
func seedAdmin(log *zap.Logger, users repo.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	ctx := context.Background()

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Warn("admin seed skipped", zap.Error(err))
		return
	}

	admin := &model.User{
		Name:     "Admin",
		Email:    email,
		Password: string(pwHash),
		Role:     model.RoleAdmin,
	}

	if err := users.Create(ctx, admin); err != nil {
		log.Warn("admin seed failed", zap.Error(err))
		return
	}

	log.Info("admin user seeded", zap.String("email", email))
}
