package model

import "time"

// ShopPlatform identifies the e-commerce platform a shop runs on.
type ShopPlatform string

const (
	PlatformShopify ShopPlatform = "shopify"
	PlatformIkas    ShopPlatform = "ikas"
	PlatformXML     ShopPlatform = "xml"
)

// Shop is a merchant store connected to the platform.
type Shop struct {
	Domain       string
	Platform     ShopPlatform
	Verified     bool
	ConnectedAt  time.Time
	LastSyncedAt *time.Time
}
