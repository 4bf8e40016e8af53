package entities

import (
	"context"

	"bookkeeper/internal/entities/models"
	"bookkeeper/pkg/domain"
)

// Seed loads the built-in reference data: the known banks and merchants
// and the default category tree. Intended for fresh in-memory sets; it
// does not check for duplicates.
func Seed(ctx context.Context, set *Set) error {
	seedBanks(ctx, set.Banks)
	seedMerchants(ctx, set.Merchants)
	return seedCategories(ctx, set.Categories)
}

func seedBanks(ctx context.Context, r *BankRegistry) {
	r.Register(ctx, models.Bank{
		CanonicalName: "Bank of America",
		Aliases:       []string{"BofA", "BoA", "Bank of America NA", "Bank of America N.A."},
		Country:       "US",
		Type:          models.BankChecking,
	})
	r.Register(ctx, models.Bank{
		CanonicalName: "Apple Card",
		Aliases:       []string{"AppleCard", "Apple"},
		Country:       "US",
		Type:          models.BankCreditCard,
	})
	r.Register(ctx, models.Bank{
		CanonicalName: "Stripe",
		Aliases:       []string{"Stripe Inc", "Stripe Payments"},
		Country:       "US",
		Type:          models.BankPaymentProcessor,
	})
	r.Register(ctx, models.Bank{
		CanonicalName: "Wise",
		Aliases:       []string{"TransferWise", "Wise Payments"},
		Country:       "UK",
		Type:          models.BankPaymentProcessor,
	})
	r.Register(ctx, models.Bank{
		CanonicalName: "Scotiabank",
		Aliases:       []string{"Scotia", "Bank of Nova Scotia", "Scotiabank MX"},
		Country:       "CA",
		Type:          models.BankChecking,
	})
}

func seedMerchants(ctx context.Context, r *MerchantRegistry) {
	r.Register(ctx, models.Merchant{
		CanonicalName:     "Starbucks",
		Aliases:           []string{"STARBUCKS", "Starbucks Coffee", "STARBUCKS CORP"},
		Type:              models.MerchantRestaurant,
		SuggestedCategory: "Café",
	})
	r.Register(ctx, models.Merchant{
		CanonicalName:     "Amazon",
		Aliases:           []string{"AMAZON.COM", "Amazon Marketplace", "AMZN Mktp"},
		Type:              models.MerchantRetail,
		SuggestedCategory: "Shopping",
	})
	r.Register(ctx, models.Merchant{
		CanonicalName:     "Uber",
		Aliases:           []string{"UBER", "Uber Trip", "UBER *TRIP"},
		Type:              models.MerchantTransportation,
		SuggestedCategory: "Transportation",
	})
	r.Register(ctx, models.Merchant{
		CanonicalName:     "Netflix",
		Aliases:           []string{"NETFLIX.COM", "Netflix Inc"},
		Type:              models.MerchantEntertainment,
		SuggestedCategory: "Streaming",
	})
	r.Register(ctx, models.Merchant{
		CanonicalName:     "Stripe Fees",
		Aliases:           []string{"Stripe Inc", "STRIPE"},
		Type:              models.MerchantFinancial,
		SuggestedCategory: "Business Expense",
	})
}

func seedCategories(ctx context.Context, r *CategoryRegistry) error {
	root := func(name string, kind models.CategoryKind, icon, color string) (domain.CategoryID, error) {
		v, err := r.Register(ctx, models.Category{Name: name, Kind: kind, Icon: icon, Color: color})
		if err != nil {
			return domain.CategoryID{}, err
		}
		return domain.ParseCategoryID(v.EntityID)
	}
	child := func(name string, parent domain.CategoryID, kind models.CategoryKind, icon, color string) (domain.CategoryID, error) {
		v, err := r.Register(ctx, models.Category{Name: name, ParentID: &parent, Kind: kind, Icon: icon, Color: color})
		if err != nil {
			return domain.CategoryID{}, err
		}
		return domain.ParseCategoryID(v.EntityID)
	}

	foodDining, err := root("Food & Dining", models.CategoryExpense, "🍽️", "#FF5733")
	if err != nil {
		return err
	}
	restaurants, err := child("Restaurants", foodDining, models.CategoryExpense, "🍴", "#FF6B4A")
	if err != nil {
		return err
	}
	if _, err := child("Fast Food", restaurants, models.CategoryExpense, "🍔", "#FF8C61"); err != nil {
		return err
	}
	if _, err := child("Café", restaurants, models.CategoryExpense, "☕", "#8B4513"); err != nil {
		return err
	}
	if _, err := child("Groceries", foodDining, models.CategoryExpense, "🛒", "#4CAF50"); err != nil {
		return err
	}

	transportation, err := root("Transportation", models.CategoryExpense, "🚗", "#2196F3")
	if err != nil {
		return err
	}
	if _, err := child("Gas & Fuel", transportation, models.CategoryExpense, "⛽", "#3F51B5"); err != nil {
		return err
	}
	if _, err := child("Uber/Lyft", transportation, models.CategoryExpense, "🚕", "#03A9F4"); err != nil {
		return err
	}

	shopping, err := root("Shopping", models.CategoryExpense, "🛍️", "#E91E63")
	if err != nil {
		return err
	}
	if _, err := child("General", shopping, models.CategoryExpense, "🏪", "#F06292"); err != nil {
		return err
	}
	if _, err := child("Online Shopping", shopping, models.CategoryExpense, "📦", "#EC407A"); err != nil {
		return err
	}

	income, err := root("Income", models.CategoryIncome, "💰", "#4CAF50")
	if err != nil {
		return err
	}
	if _, err := child("Salary", income, models.CategoryIncome, "💼", "#66BB6A"); err != nil {
		return err
	}
	if _, err := child("Business Income", income, models.CategoryIncome, "📈", "#81C784"); err != nil {
		return err
	}

	transfer, err := root("Transfer", models.CategoryTransfer, "🔄", "#9E9E9E")
	if err != nil {
		return err
	}
	_, err = child("Account Transfer", transfer, models.CategoryTransfer, "💸", "#BDBDBD")
	return err
}
