package main

import (
	"log"
	"net/http"

	"order-service/internal/api"
	"order-service/internal/api/handlers"
	"order-service/internal/cache"
	"order-service/internal/database"
	"order-service/internal/repository"
)

func main() {
	cfg, err := database.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	log.Printf("starting on node %q", cfg.Node)

	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}
	defer pool.Close()

	if err := database.Migrate(pool, ""); err != nil {
		log.Fatal("migrations failed: ", err)
	}

	orders := repository.NewOrderRepository(pool)
	clients := repository.NewClientRepository(pool)
	shops := repository.NewShopRepository(pool)
	workers := repository.NewWorkerRepository(pool)

	goods := repository.NewGoodsRepository(pool)
	// cache is best effort, the service runs fine without Redis
	if rdb, err := cache.ConnectRedis(cfg); err != nil {
		log.Printf("redis unavailable, goods search uncached: %v", err)
	} else {
		goods = cache.NewCachedGoodsRepository(goods, rdb)
	}

	rnd, err := handlers.NewRenderer("./web/templates/*.html")
	if err != nil {
		log.Fatal("failed to parse templates: ", err)
	}

	router := api.NewRouter(
		handlers.Index(rnd),
		handlers.NewCustomerHandler(orders, clients, shops, rnd),
		handlers.NewStaffHandler(orders, clients, shops, workers, rnd),
		handlers.NewSearchHandler(clients, goods),
	)

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal("server stopped: ", err)
	}
}
