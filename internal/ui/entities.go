package ui

import (
	"context"
	"strconv"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/collection"
	"github.com/storeops/storeops/internal/workflow"
)

var userRoles = []string{"admin", "manager", "staff"}

func orderAdapter(backend api.Backend) adapter[api.Order] {
	return adapter[api.Order]{
		route:  RouteOrders,
		entity: "orders",
		columns: []column[api.Order]{
			{title: "Order", width: 8, cell: func(o api.Order) string { return o.Number }},
			{title: "Customer", width: 18, cell: func(o api.Order) string { return o.Customer.Name }},
			{title: "Product", width: 18, cell: func(o api.Order) string { return o.Product.Name }},
			{title: "Qty", width: 4, cell: func(o api.Order) string { return strconv.Itoa(o.Quantity) }},
			{title: "Total", width: 10, cell: func(o api.Order) string { return formatMoney(o.Total) }},
			{title: "Status", width: 11, cell: func(o api.Order) string { return o.Status }},
			{title: "Placed", width: 17, cell: func(o api.Order) string {
				if t := o.Created(); !t.IsZero() {
					return t.Format("2006-01-02 15:04")
				}
				return o.CreatedAt
			}},
		},
		searchFields: func(o api.Order) []string {
			return []string{o.ID, o.Number, o.Customer.Name, o.Product.Name}
		},
		statusOf:      func(o api.Order) string { return o.Status },
		statusFilters: api.OrderStatuses,
		fetch:         backend.ListOrders,
		editFields: func(o api.Order) []formField {
			choice := 0
			for i, s := range api.OrderStatuses {
				if s == o.Status {
					choice = i
				}
			}
			return []formField{{
				label:   "Status",
				kind:    fieldChoice,
				options: api.OrderStatuses,
				choice:  choice,
			}}
		},
		buildSubmit: func(target api.Order, fields []formField) (submitFunc[api.Order], func(api.Order) api.Order, error) {
			status := fields[0].current()
			if err := workflow.Required("status", status); err != nil {
				return nil, nil, err
			}
			id := target.ID
			call := func(ctx context.Context) (*api.Order, error) {
				return backend.UpdateOrderStatus(ctx, id, status)
			}
			apply := func(o api.Order) api.Order {
				o.Status = status
				return o
			}
			return call, apply, nil
		},
	}
}

func userAdapter(backend api.Backend) adapter[api.User] {
	return adapter[api.User]{
		route:  RouteUsers,
		entity: "users",
		columns: []column[api.User]{
			{title: "Name", width: 18, cell: func(u api.User) string { return u.Name }},
			{title: "Email", width: 26, cell: func(u api.User) string { return u.Email }},
			{title: "Role", width: 9, cell: func(u api.User) string { return u.Role }},
			{title: "Active", width: 6, cell: func(u api.User) string {
				if u.Active {
					return "yes"
				}
				return "no"
			}},
		},
		searchFields:  func(u api.User) []string { return []string{u.ID, u.Name, u.Email} },
		statusOf:      func(u api.User) string { return u.Role },
		statusFilters: userRoles,
		fetch:         backend.ListUsers,
		editFields: func(u api.User) []formField {
			choice := 0
			for i, r := range userRoles {
				if r == u.Role {
					choice = i
				}
			}
			return []formField{
				{label: "Name", kind: fieldText, value: u.Name},
				{label: "Email", kind: fieldText, value: u.Email},
				{label: "Role", kind: fieldChoice, options: userRoles, choice: choice},
			}
		},
		buildSubmit: func(target api.User, fields []formField) (submitFunc[api.User], func(api.User) api.User, error) {
			change := api.UserChange{
				Name:  fields[0].current(),
				Email: fields[1].current(),
				Role:  fields[2].current(),
			}
			if err := workflow.Required("name", change.Name); err != nil {
				return nil, nil, err
			}
			if err := workflow.Required("email", change.Email); err != nil {
				return nil, nil, err
			}
			id := target.ID
			call := func(ctx context.Context) (*api.User, error) {
				return backend.UpdateUser(ctx, id, change)
			}
			apply := func(u api.User) api.User {
				u.Name = change.Name
				u.Email = change.Email
				u.Role = change.Role
				return u
			}
			return call, apply, nil
		},
		deleteRecord: backend.DeleteUser,
		deleteLabel:  func(u api.User) string { return u.Name + " <" + u.Email + ">" },
	}
}

func productAdapter(backend api.Backend) adapter[api.Product] {
	return adapter[api.Product]{
		route:  RouteProducts,
		entity: "products",
		columns: []column[api.Product]{
			{title: "No", width: 4, cell: func(p api.Product) string { return strconv.Itoa(p.No) }},
			{title: "Name", width: 22, cell: func(p api.Product) string { return p.Name }},
			{title: "Category", width: 14, cell: func(p api.Product) string { return p.Category }},
			{title: "Price", width: 10, cell: func(p api.Product) string { return formatMoney(p.Price) }},
			{title: "Stock", width: 6, cell: func(p api.Product) string { return strconv.Itoa(p.Stock) }},
		},
		searchFields: func(p api.Product) []string { return []string{p.ID, p.Name, p.Category} },
		fetch:        backend.ListProducts,
		editFields: func(p api.Product) []formField {
			return []formField{
				{label: "Price", kind: fieldText, value: strconv.FormatFloat(p.Price, 'f', 2, 64)},
				{label: "Stock", kind: fieldText, value: strconv.Itoa(p.Stock)},
			}
		},
		buildSubmit: func(target api.Product, fields []formField) (submitFunc[api.Product], func(api.Product) api.Product, error) {
			price, err := workflow.PriceField("price", fields[0].current())
			if err != nil {
				return nil, nil, err
			}
			stock, err := workflow.CountField("stock", fields[1].current())
			if err != nil {
				return nil, nil, err
			}
			id := target.ID
			change := api.ProductChange{Price: price, Stock: stock}
			call := func(ctx context.Context) (*api.Product, error) {
				return backend.UpdateProduct(ctx, id, change)
			}
			apply := func(p api.Product) api.Product {
				p.Price = price
				p.Stock = stock
				return p
			}
			return call, apply, nil
		},
		deleteRecord: backend.DeleteProduct,
		// The backend keeps the display ordinal contiguous; mirror that
		// locally after a delete.
		afterRemove: func(c *collection.Collection[api.Product]) {
			c.Renumber(func(p api.Product, ordinal int) api.Product {
				p.No = ordinal
				return p
			})
		},
		deleteLabel: func(p api.Product) string { return p.Name },
	}
}

func reportAdapter(backend api.Backend) adapter[api.LogEntry] {
	return adapter[api.LogEntry]{
		route:  RouteReports,
		entity: "reports",
		columns: []column[api.LogEntry]{
			{title: "When", width: 17, cell: func(l api.LogEntry) string { return l.CreatedAt }},
			{title: "Actor", width: 14, cell: func(l api.LogEntry) string { return l.Actor }},
			{title: "Action", width: 10, cell: func(l api.LogEntry) string { return l.Action }},
			{title: "Entity", width: 10, cell: func(l api.LogEntry) string { return l.Entity }},
			{title: "Detail", width: 32, cell: func(l api.LogEntry) string { return l.Detail }},
		},
		searchFields: func(l api.LogEntry) []string {
			return []string{l.Actor, l.Action, l.Entity, l.Detail}
		},
		fetch: func(ctx context.Context, _ api.ListParams) ([]api.LogEntry, api.PageMeta, error) {
			entries, err := backend.ListReports(ctx)
			return entries, api.PageMeta{Total: len(entries)}, err
		},
	}
}
