package app

import (
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"restaurant-workers/internal/api"
	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/logger"
	createrating "restaurant-workers/internal/workers/feedback/create-rating"
	generateuploadurl "restaurant-workers/internal/workers/feedback/generate-upload-url"
	getrestaurantmenu "restaurant-workers/internal/workers/menu/get-restaurant-menu"
	getrestaurantrecommendations "restaurant-workers/internal/workers/menu/get-restaurant-recommendations"
	globalfoodsearch "restaurant-workers/internal/workers/menu/global-food-search"
	createorder "restaurant-workers/internal/workers/orders/create-order"
	getorders "restaurant-workers/internal/workers/orders/get-orders"
	updateorderstatus "restaurant-workers/internal/workers/orders/update-order-status"
	processpayment "restaurant-workers/internal/workers/payments/process-payment"
)

// Registration pairs a Zeebe task type with its job handler.
type Registration struct {
	TaskType string
	Handle   worker.JobHandler
}

// BuildServices constructs every worker handler whose backends are present.
func BuildServices(cfg *config.Config, c *Clients, log logger.Logger) api.Services {
	menuStore := catalog.NewMenuStore(c.DynamoDB, cfg.AWS.DynamoDB.MenuTable, cfg.AWS.DynamoDB.BatchMaxRetries, log)

	s := api.Services{
		Menu:            getrestaurantmenu.NewHandler(getrestaurantmenu.LoadConfig(cfg), menuStore, c.Redis, log),
		UploadURL:       generateuploadurl.NewHandler(generateuploadurl.LoadConfig(cfg), c.Presigner, log),
		Rating:          createrating.NewHandler(createrating.LoadConfig(cfg), c.DynamoDB, log),
		Recommendations: getrestaurantrecommendations.NewHandler(getrestaurantrecommendations.LoadConfig(cfg), c.Recommender, c.Redis, log),
		CreateOrder:     createorder.NewHandler(createorder.LoadConfig(cfg), c.DynamoDB, log),
		GetOrders:       getorders.NewHandler(getorders.LoadConfig(cfg), c.DynamoDB, log),
		UpdateStatus:    updateorderstatus.NewHandler(updateorderstatus.LoadConfig(cfg), c.DynamoDB, c.SNS, log),
	}
	if c.Search != nil {
		index := catalog.NewSearchIndex(c.Search, cfg.Search.IndexName, cfg.Search.BulkBatch, log)
		s.Search = globalfoodsearch.NewHandler(globalfoodsearch.LoadConfig(cfg), index, log)
	}
	if c.Postgres != nil {
		s.Payment = processpayment.NewHandler(processpayment.LoadConfig(cfg), c.Postgres, log)
	}
	return s
}

// Registrations lists the job handlers of every built service in a stable order.
func Registrations(s api.Services) []Registration {
	var regs []Registration
	add := func(taskType string, handle worker.JobHandler) {
		regs = append(regs, Registration{TaskType: taskType, Handle: handle})
	}

	if s.Menu != nil {
		add(getrestaurantmenu.TaskType, s.Menu.Handle)
	}
	if s.Search != nil {
		add(globalfoodsearch.TaskType, s.Search.Handle)
	}
	if s.UploadURL != nil {
		add(generateuploadurl.TaskType, s.UploadURL.Handle)
	}
	if s.Rating != nil {
		add(createrating.TaskType, s.Rating.Handle)
	}
	if s.Recommendations != nil {
		add(getrestaurantrecommendations.TaskType, s.Recommendations.Handle)
	}
	if s.CreateOrder != nil {
		add(createorder.TaskType, s.CreateOrder.Handle)
	}
	if s.GetOrders != nil {
		add(getorders.TaskType, s.GetOrders.Handle)
	}
	if s.UpdateStatus != nil {
		add(updateorderstatus.TaskType, s.UpdateStatus.Handle)
	}
	if s.Payment != nil {
		add(processpayment.TaskType, s.Payment.Handle)
	}
	return regs
}
