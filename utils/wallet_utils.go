package utils

import (
	"github.com/Nikhil-407/TrendMart/config"
	"github.com/Nikhil-407/TrendMart/models"
	"gorm.io/gorm"
)

// WalletBalanceReason is the conflict returned when a guarded debit touches
// a wallet that cannot cover the amount.
const WalletBalanceReason = "Insufficient wallet balance"

// GetOrCreateWallet retrieves or creates a wallet for a user
func GetOrCreateWallet(userID uint) (*models.Wallet, error) {
	return getOrCreateWalletTx(config.DB, userID)
}

func getOrCreateWalletTx(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		wallet = models.Wallet{
			UserID:  userID,
			Balance: 0,
		}
		if err := db.Create(&wallet).Error; err != nil {
			return nil, err
		}
	}
	return &wallet, nil
}

// CreditWallet adds funds to a user's wallet and appends the matching ledger
// entry, inside the caller's transaction.
func CreditWallet(tx *gorm.DB, userID uint, amount float64, description string, orderID *uint, reference string) (*models.WalletTransaction, error) {
	wallet, err := getOrCreateWalletTx(tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return nil, err
	}

	transaction := models.WalletTransaction{
		WalletID:    wallet.ID,
		Amount:      amount,
		Type:        models.TransactionTypeCredit,
		Description: description,
		OrderID:     orderID,
		Reference:   reference,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DebitWallet removes funds from a user's wallet with a balance guard in the
// WHERE clause, so concurrent debits can never push the balance negative.
// Returns a conflict AppError when the wallet cannot cover the amount.
func DebitWallet(tx *gorm.DB, userID uint, amount float64, description string, orderID *uint, reference string) (*models.WalletTransaction, error) {
	wallet, err := getOrCreateWalletTx(tx, userID)
	if err != nil {
		return nil, err
	}

	res := tx.Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", wallet.ID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ConflictErr(WalletBalanceReason)
	}

	transaction := models.WalletTransaction{
		WalletID:    wallet.ID,
		Amount:      -amount,
		Type:        models.TransactionTypeDebit,
		Description: description,
		OrderID:     orderID,
		Reference:   reference,
	}
	if err := tx.Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}
