package promotions

// ResolvePromotionID returns the promotion a line is tagged with, checking the
// line itself, then its product, then the product's promotion info. Zero means
// the line is outside promotion scope.
func ResolvePromotionID(line CartLine) PromotionID {
	if line.PromotionID != 0 {
		return line.PromotionID
	}
	if line.Product == nil {
		return 0
	}
	if line.Product.PromotionID != 0 {
		return line.Product.PromotionID
	}
	if line.Product.PromotionInfo != nil {
		return line.Product.PromotionInfo.PromotionID
	}
	return 0
}

// GroupByPromotion partitions cart lines by promotion id. Lines without a
// promotion are dropped.
func GroupByPromotion(lines []CartLine) map[PromotionID][]CartLine {
	grouped := make(map[PromotionID][]CartLine)
	for _, line := range lines {
		id := ResolvePromotionID(line)
		if id == 0 {
			continue
		}
		grouped[id] = append(grouped[id], line)
	}
	return grouped
}
