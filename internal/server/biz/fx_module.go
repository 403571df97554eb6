package biz

import (
	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewSystemService),
	fx.Provide(NewAuthService),
	fx.Provide(NewTenantService),
	fx.Provide(NewUserService),
	fx.Provide(NewOrderService),
	fx.Provide(NewProductService),
	fx.Provide(NewCustomerService),
	fx.Provide(NewShopService),
	fx.Provide(NewBillingService),
	fx.Provide(NewCalendarService),
)
