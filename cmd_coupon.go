package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Govind-619/storefront/models"
	"github.com/Govind-619/storefront/storage"
	"github.com/Govind-619/storefront/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var couponFlags struct {
	code    string
	percent int
	expiry  string
	min     int64
	maxUses int
}

var couponCmd = &cobra.Command{
	Use:   "coupon",
	Short: "Manage coupons in the database",
}

var couponCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a percentage coupon",
	RunE: func(cmd *cobra.Command, args []string) error {
		code := models.CanonicalCouponCode(couponFlags.code)
		if msg := utils.ValidateCouponCode(code); msg != "" {
			return fmt.Errorf("code %s", msg)
		}
		if couponFlags.percent < 1 || couponFlags.percent > 100 {
			return fmt.Errorf("percent must be between 1 and 100")
		}
		expiry, err := time.Parse("2006-01-02", couponFlags.expiry)
		if err != nil {
			return fmt.Errorf("invalid expiry %q, use YYYY-MM-DD", couponFlags.expiry)
		}
		maxUses := couponFlags.maxUses
		if maxUses == 0 {
			maxUses = models.DefaultCouponMaxUses
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)(cmd.Context())

		coupon := &models.Coupon{
			Code:            code,
			DiscountPercent: couponFlags.percent,
			Expiry:          expiry.Add(24*time.Hour - time.Second),
			MinPurchase:     couponFlags.min,
			MaxUses:         maxUses,
			Active:          true,
		}
		if err := storage.NewGormCouponStore(db).CreateCoupon(cmd.Context(), coupon); err != nil {
			return fmt.Errorf("failed to create coupon %s: %w", code, err)
		}
		logger.Info("Coupon created", zap.String("code", coupon.Code), zap.Uint("id", coupon.ID))
		return nil
	},
}

var couponListCmd = &cobra.Command{
	Use:   "list",
	Short: "List coupons",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)(cmd.Context())

		coupons, err := storage.NewGormCouponStore(db).ListCoupons(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tPERCENT\tMIN\tUSED\tEXPIRY\tACTIVE")
		for _, c := range coupons {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d/%d\t%s\t%t\n",
				c.ID, c.Code, c.DiscountPercent, c.MinPurchase, c.UsedCount, c.MaxUses,
				c.Expiry.Format("2006-01-02"), c.Active)
		}
		return w.Flush()
	},
}

func init() {
	f := couponCreateCmd.Flags()
	f.StringVar(&couponFlags.code, "code", "", "coupon code")
	f.IntVar(&couponFlags.percent, "percent", 0, "discount percent (1-100)")
	f.StringVar(&couponFlags.expiry, "expiry", "", "last valid day, YYYY-MM-DD")
	f.Int64Var(&couponFlags.min, "min", 0, "minimum cart subtotal in minor units")
	f.IntVar(&couponFlags.maxUses, "max-uses", 0, "usage cap (default 100)")
	_ = couponCreateCmd.MarkFlagRequired("code")
	_ = couponCreateCmd.MarkFlagRequired("percent")
	_ = couponCreateCmd.MarkFlagRequired("expiry")

	couponCmd.AddCommand(couponCreateCmd, couponListCmd)
}
