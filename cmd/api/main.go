package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"marketplace/internal/auth"
	"marketplace/internal/commerce"
	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/server"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	persistence := infraRepo.NewGormPersistence(gormDB)
	if err := persistence.AutoMigrate(); err != nil {
		log.Fatal(err)
	}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	verifier := auth.NewBcryptVerifier(10)

	//JWT issuer
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, accessTokenTTL)

	policy := commerce.ValidateNone
	if cfg.ValidateBasketLines {
		policy = commerce.ValidateAvailable
	}

	//合成ルート生成とメモリへの流し込み
	coordinator := commerce.NewCoordinator(persistence, verifier, policy, &realClock{})
	if err := coordinator.LoadState(context.Background()); err != nil {
		log.Fatal(err)
	}

	//Handler生成
	handlers := server.Handlers{
		Auth:   handler.NewAuthHandler(coordinator, issuer),
		Item:   handler.NewItemHandler(coordinator),
		Basket: handler.NewBasketHandler(coordinator),
		Order:  handler.NewOrderHandler(coordinator),
		User:   handler.NewUserHandler(coordinator),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, issuer, handlers); err != nil {
		log.Fatal(err)
	}
}
