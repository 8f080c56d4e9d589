package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

type logStats struct {
	TotalErrors        int
	OrdersPlaced       int
	CheckoutFailures   int
	StockConflicts     int
	CouponRejections   int
	PaymentFailures    int
	WalletShortfalls   int
	RefundsIssued      int
	ReturnsRequested   int
	LoginFailures      int
	ErrorPatterns      map[string]int
}

var (
	orderPlacedRe     = regexp.MustCompile(`Order placed successfully, ID: (\d+)`)
	stockConflictRe   = regexp.MustCompile(`Stock guard rejected|Insufficient stock`)
	couponRejectedRe  = regexp.MustCompile(`Coupon .* rejected|Coupon not found`)
	paymentFailureRe  = regexp.MustCompile(`verification failed`)
	walletShortfallRe = regexp.MustCompile(`Insufficient wallet balance`)
	refundRe          = regexp.MustCompile(`Credited (item )?refund|Return approved`)
	returnRequestRe   = regexp.MustCompile(`Return requested`)
	loginFailureRe    = regexp.MustCompile(`Login failed|Blocked user`)
	errorHeadRe       = regexp.MustCompile(`ERROR: [\d/]+ [\d:]+ \S+ (Failed to \w+(?: \w+)?)`)
)

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &logStats{ErrorPatterns: make(map[string]int)}

	scanFile(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats, true)
	scanFile(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats, false)

	printReport(stats, today)
}

func scanFile(logFile string, stats *logStats, isError bool) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Skipping %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if isError {
			stats.TotalErrors++
			if m := errorHeadRe.FindStringSubmatch(line); m != nil {
				stats.ErrorPatterns[m[1]]++
			}
		}

		switch {
		case orderPlacedRe.MatchString(line):
			stats.OrdersPlaced++
		case stockConflictRe.MatchString(line):
			stats.StockConflicts++
			stats.CheckoutFailures++
		case walletShortfallRe.MatchString(line):
			stats.WalletShortfalls++
			stats.CheckoutFailures++
		case couponRejectedRe.MatchString(line):
			stats.CouponRejections++
			stats.CheckoutFailures++
		case paymentFailureRe.MatchString(line):
			stats.PaymentFailures++
		case refundRe.MatchString(line):
			stats.RefundsIssued++
		case returnRequestRe.MatchString(line):
			stats.ReturnsRequested++
		case loginFailureRe.MatchString(line):
			stats.LoginFailures++
		}
	}
}

func printReport(stats *logStats, date string) {
	fmt.Printf("=== Log Report for %s ===\n\n", date)
	fmt.Printf("Orders placed:        %d\n", stats.OrdersPlaced)
	fmt.Printf("Checkout failures:    %d\n", stats.CheckoutFailures)
	fmt.Printf("  stock conflicts:    %d\n", stats.StockConflicts)
	fmt.Printf("  wallet shortfalls:  %d\n", stats.WalletShortfalls)
	fmt.Printf("  coupon rejections:  %d\n", stats.CouponRejections)
	fmt.Printf("Payment failures:     %d\n", stats.PaymentFailures)
	fmt.Printf("Returns requested:    %d\n", stats.ReturnsRequested)
	fmt.Printf("Refunds issued:       %d\n", stats.RefundsIssued)
	fmt.Printf("Login failures:       %d\n", stats.LoginFailures)
	fmt.Printf("Total errors logged:  %d\n", stats.TotalErrors)

	if len(stats.ErrorPatterns) > 0 {
		fmt.Println("\nTop error patterns:")
		type entry struct {
			pattern string
			count   int
		}
		entries := make([]entry, 0, len(stats.ErrorPatterns))
		for p, n := range stats.ErrorPatterns {
			entries = append(entries, entry{p, n})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })
		for i, e := range entries {
			if i >= 10 {
				break
			}
			fmt.Printf("  %4d  %s\n", e.count, e.pattern)
		}
	}
}
