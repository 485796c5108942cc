package models

import "github.com/aggroplatform/aggro-admin/store"

// CropInfo is one crop reference record.
type CropInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ScientificName   string `json:"scientificName"`
	Category         string `json:"category"`
	Season           string `json:"season"`
	Duration         string `json:"duration"`
	SoilType         string `json:"soilType"`
	WaterRequirement string `json:"waterRequirement"`
	YieldAmount      string `json:"yieldAmount"`
	MarketPrice      string `json:"marketPrice"`
	URL              string `json:"url"`
	Image            string `json:"image,omitempty"`
}

func CropFromDoc(doc store.Document) CropInfo {
	c := CropInfo{
		ID:               AsString(doc["id"]),
		Name:             AsString(doc["name"]),
		ScientificName:   AsString(doc["scientificName"]),
		Category:         AsString(doc["category"]),
		Season:           AsString(doc["season"]),
		Duration:         AsString(doc["duration"]),
		SoilType:         AsString(doc["soilType"]),
		WaterRequirement: AsString(doc["waterRequirement"]),
		YieldAmount:      AsString(doc["yieldAmount"]),
		MarketPrice:      AsString(doc["marketPrice"]),
		URL:              AsString(doc["url"]),
		Image:            AsString(doc["image"]),
	}
	// Older documents stored the yield under "yield". Reads fall back to the
	// legacy key; writes always use "yieldAmount".
	if c.YieldAmount == "" {
		c.YieldAmount = AsString(doc["yield"])
	}
	return c
}

func (c CropInfo) ToDoc() store.Document {
	return store.Document{
		"name":             c.Name,
		"scientificName":   c.ScientificName,
		"category":         c.Category,
		"season":           c.Season,
		"duration":         c.Duration,
		"soilType":         c.SoilType,
		"waterRequirement": c.WaterRequirement,
		"yieldAmount":      c.YieldAmount,
		"marketPrice":      c.MarketPrice,
		"url":              c.URL,
		"image":            c.Image,
	}
}
