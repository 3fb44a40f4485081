package model

import "time"

type Scraper struct {
	ScraperID   int64     `gorm:"column:scraper_id;primaryKey;autoIncrement" json:"scraper_id"`
	URL         string    `gorm:"column:url;size:2048;not null" json:"url"`
	SnapshotKey *string   `gorm:"column:snapshot_key;size:1024" json:"snapshot_key,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Paths []ScraperPath `gorm:"foreignKey:ScraperID;references:ScraperID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"paths"`
}

func (Scraper) TableName() string { return "scraper" }

type ScraperPath struct {
	ScraperPathID int64  `gorm:"column:scraper_path_id;primaryKey;autoIncrement" json:"-"`
	ScraperID     int64  `gorm:"column:scraper_id;not null;index" json:"scraper_id"`
	Field         string `gorm:"column:field;size:128;not null" json:"field"`
	Path          string `gorm:"column:path;type:text;not null" json:"path"`
}

func (ScraperPath) TableName() string { return "scraper_path" }
