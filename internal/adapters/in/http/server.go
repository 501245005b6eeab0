// Package http is the inbound HTTP surface. Handlers stay thin: they parse
// the request, resolve the acting party from headers, and delegate to the
// application layer. Identity is established upstream; the X-Actor-Id and
// X-Actor-Role headers are trusted as-is.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	addProductHandler      commands.AddProductCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	addProductHandler commands.AddProductCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		cancelOrderHandler:     cancelOrderHandler,
		addProductHandler:      addProductHandler,
		getOrderHandler:        getOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		validate:               validator.New(),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(Metrics())

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.TransitionOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/products", s.CreateProduct)
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// acting consumer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return errorJSON(ctx, err)
		}
		items = append(items, commands.ItemInput{ProductID: productID, Quantity: item.Quantity})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, by.ID(), items,
		order.PaymentMethod(req.PaymentMethod), req.DeliveryAddress, req.TotalCents)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

// TransitionOrder handles POST /api/v1/orders/:id/status - advances the
// order's status on behalf of the acting party.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req transitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, by, target, req.Reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - terminates the order
// on behalf of the acting party.
func (s *Server) CancelOrder(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, by, req.Reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves the full order read
// model including items, history and termination.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// ListOrders handles GET /api/v1/orders - lists the acting party's orders,
// optionally filtered by repeated status query parameters.
func (s *Server) ListOrders(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}

	var statuses []order.Status
	for _, raw := range ctx.QueryParams()["status"] {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return errorJSON(ctx, err)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewListOrdersQuery(by, statuses)
	if err != nil {
		return errorJSON(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(rows))
}

// CreateProduct handles POST /api/v1/products - registers a product for the
// acting farmer.
func (s *Server) CreateProduct(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return errorJSON(ctx, err)
	}
	if by.Role() != actor.RoleFarmer {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "only farmers can register products",
		})
	}

	var req createProductRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewAddProductCommand(productID, by.ID(), req.Name, req.PriceCents, req.Quantity)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.addProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createProductResponse{ID: productID.String()})
}

func actorFromHeaders(ctx echo.Context) (actor.Actor, error) {
	rawID := ctx.Request().Header.Get(actorIDHeader)
	if rawID == "" {
		return actor.Actor{}, errs.NewValueIsRequiredError(actorIDHeader)
	}
	rawRole := ctx.Request().Header.Get(actorRoleHeader)
	if rawRole == "" {
		return actor.Actor{}, errs.NewValueIsRequiredError(actorRoleHeader)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return actor.Actor{}, err
	}
	role, err := actor.RoleFromString(rawRole)
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role)
}
