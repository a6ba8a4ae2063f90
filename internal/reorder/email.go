package reorder

import "fmt"

func emailSubject(itemName string) string {
	return fmt.Sprintf("Reorder Request for %s", itemName)
}

func emailBody(supplierName, itemName string, quantity int) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe need to reorder %d units of %s. Please confirm the order at your earliest convenience.\n\nBest regards,\nSmartSort Team",
		supplierName, quantity, itemName,
	)
}
