package handler

import (
	"context"
	"strconv"
	"strings"

	models "inventory-billing/model"
	pkgerrors "inventory-billing/pkg/errors"
	"inventory-billing/pkg/logger"
	"inventory-billing/service"
)

// FinishSentinel ends the ordering loop.
const FinishSentinel = "0"

// Handler is the interactive shell that talks to service.Service
type Handler struct {
	svc      service.ServiceInterface
	console  *Console
	log      *logger.Logger
	currency string
}

// NewHandler returns a Handler instance
func NewHandler(s service.ServiceInterface, c *Console, log *logger.Logger, currency string) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: s, console: c, log: log, currency: currency}
}

// Run drives one session: customer details, menu, ordering loop, bill.
func (h *Handler) Run(ctx context.Context) (models.Bill, error) {
	customer := h.ReadCustomer()
	h.PrintMenu()
	if err := h.OrderLoop(ctx); err != nil {
		return models.Bill{}, err
	}
	if err := h.console.Err(); err != nil {
		return models.Bill{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "console input unreadable")
	}

	bill, err := h.svc.GenerateBill(ctx, customer)
	if err != nil {
		return bill, err
	}
	h.PrintBill(bill)
	return bill, nil
}

func (h *Handler) ReadCustomer() models.Customer {
	h.console.Println("---------------Customer Details-----------------")
	name, _ := h.console.Prompt("Enter your Name   : ")
	email, _ := h.console.Prompt("Enter Mail ID     : ")
	phone, _ := h.console.Prompt("Enter Ph No.      : ")
	return models.Customer{Name: name, Email: email, Phone: phone}
}

func (h *Handler) PrintMenu() {
	h.console.Println()
	h.console.Println("------------------MENU----------------------")
	for _, r := range h.svc.Menu() {
		h.console.Printf("%s : %s \t| %s \t| %d\n", r.ID, r.Name, r.Price.String(), r.Quantity)
	}
	h.console.Println("--------------------------------------------")
}

// OrderLoop reads product ids until the sentinel or end of input. Ids are
// matched exactly as typed. Only fatal errors stop it.
func (h *Handler) OrderLoop(ctx context.Context) error {
	for {
		productID, ok := h.console.Prompt("Enter Product ID (or 0 to finish): ")
		if !ok || productID == FinishSentinel {
			return nil
		}
		qty, ok := h.readQuantity()
		if !ok {
			return nil
		}

		item, err := h.svc.AddToCart(ctx, productID, qty)
		if err == nil {
			h.console.Printf("Added %d %s to cart\n", item.Quantity, item.Name)
			continue
		}
		if pkgerrors.IsFatal(err) {
			return err
		}
		h.report(ctx, err)
	}
}

func (h *Handler) readQuantity() (int, bool) {
	for {
		raw, ok := h.console.Prompt("Enter the Quantity : ")
		if !ok {
			return 0, false
		}
		qty, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil {
			return qty, true
		}
		h.console.Println("Please enter a whole number.")
	}
}

func (h *Handler) report(ctx context.Context, err error) {
	typed := pkgerrors.As(err)
	switch typed.Code() {
	case pkgerrors.CodeInvalidProduct:
		h.console.Println(pkgerrors.MetadataFor(typed.Code()).PublicMessage)
	case pkgerrors.CodeValidation:
		h.console.Println("Quantity must be greater than 0.")
	case pkgerrors.CodeInsufficientStock:
		if sf, ok := typed.Details().(service.Shortfall); ok && sf.Available == 0 {
			h.console.Printf("Sorry, %s is out of stock.\n", sf.Name)
		}
	}
	h.log.Debug(h.log.WithField(ctx, "error", err.Error()), "add to cart rejected")
}

func (h *Handler) PrintBill(bill models.Bill) {
	if bill.NoPurchase() {
		h.console.Println()
		h.console.Println("No items purchased. Thank you for visiting!")
		return
	}

	c := h.console
	c.Println()
	c.Println("-------------------------------------------")
	c.Println("                  BILL                     ")
	c.Println()
	c.Printf("Customer Name     : %s\n", bill.Customer.Name)
	c.Printf("Email             : %s\n", bill.Customer.Email)
	c.Printf("Phone             : %s\n", bill.Customer.Phone)
	c.Println("-------------------------------------------")
	c.Println("Products Purchased:")
	for _, it := range bill.Items {
		c.Println()
		c.Printf("Name              : %s\n", it.Name)
		c.Printf("Quantity          : %d\n", it.Quantity)
		c.Printf("Price             : %s %s\n", it.UnitPrice.String(), h.currency)
		c.Printf("Item Total        : %s %s\n", it.LineTotal.String(), h.currency)
	}
	c.Println("-------------------------------------------")
	c.Printf("CGST              : %s %s\n", bill.Tax1Display(), h.currency)
	c.Printf("SGST              : %s %s\n", bill.Tax2Display(), h.currency)
	c.Println("-------------------------------------------")
	c.Printf("Total Bill Amount : %s %s\n", bill.TotalDisplay(), h.currency)
	c.Println("-------------------------------------------")
	c.Println(" Thanks for your order. Visit us again! ")
	c.Println("-------------------------------------------")
}
