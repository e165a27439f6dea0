package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/service"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printUser(w io.Writer, user domain.User) {
	_, _ = fmt.Fprintf(w, "%s <%s> roles: %s\n", user.Username, user.Email, strings.Join(user.Roles, ", "))
}

func printUsers(w io.Writer, users []domain.User) {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLES")
	for _, user := range users {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Email, strings.Join(user.Roles, ","))
	}
	_ = tw.Flush()
}

func printProducts(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		_, _ = fmt.Fprintln(w, "no products found")
		return
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, product := range products {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			product.ID,
			product.Name,
			product.Category,
			domain.FormatCents(product.PriceCents),
			product.Stock,
		)
	}
	_ = tw.Flush()
}

func printProduct(w io.Writer, product domain.Product) {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "id:\t%s\n", product.ID)
	_, _ = fmt.Fprintf(tw, "name:\t%s\n", product.Name)
	_, _ = fmt.Fprintf(tw, "description:\t%s\n", product.Description)
	_, _ = fmt.Fprintf(tw, "category:\t%s\n", product.Category)
	_, _ = fmt.Fprintf(tw, "price:\t%s\n", domain.FormatCents(product.PriceCents))
	_, _ = fmt.Fprintf(tw, "stock:\t%d\n", product.Stock)
	_ = tw.Flush()
}

func printOrders(w io.Writer, orders []domain.Order) {
	if len(orders) == 0 {
		_, _ = fmt.Fprintln(w, "no orders yet")
		return
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tITEMS\tTOTAL\tCREATED")
	for _, order := range orders {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			order.ID,
			order.Status,
			len(order.Lines),
			domain.FormatCents(order.TotalCents),
			order.CreatedAt.Local().Format(time.DateTime),
		)
	}
	_ = tw.Flush()
}

func printOrder(w io.Writer, order domain.Order) {
	_, _ = fmt.Fprintf(w, "order %s (%s), created %s\n", order.ID, order.Status, order.CreatedAt.Local().Format(time.DateTime))

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE")
	for _, line := range order.Lines {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			line.ProductID,
			line.Name,
			line.Quantity,
			domain.FormatCents(line.UnitPriceCents),
		)
	}
	_, _ = fmt.Fprintf(tw, "\t\ttotal\t%s\n", domain.FormatCents(order.TotalCents))
	_ = tw.Flush()
}

func printProfile(w io.Writer, profile domain.Profile) {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "name:\t%s\n", profile.FullName)
	_, _ = fmt.Fprintf(tw, "email:\t%s\n", profile.Email)
	_, _ = fmt.Fprintf(tw, "address:\t%s\n", profile.Address)
	_ = tw.Flush()
}

func printDashboard(w io.Writer, data service.DashboardData) {
	if data.Profile != nil {
		_, _ = fmt.Fprintln(w, "# profile")
		printProfile(w, *data.Profile)
	}
	if data.Orders != nil {
		_, _ = fmt.Fprintln(w, "\n# orders")
		printOrders(w, data.Orders)
	}
	if data.Products != nil {
		_, _ = fmt.Fprintln(w, "\n# products")
		printProducts(w, data.Products)
	}

	sections := make([]string, 0, len(data.Failures))
	for section := range data.Failures {
		sections = append(sections, section)
	}
	slices.Sort(sections)
	for _, section := range sections {
		_, _ = fmt.Fprintf(w, "\n%s unavailable: %v\n", section, data.Failures[section])
	}
}
