package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wholesale-pos/internal/database"
	"wholesale-pos/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// RunAgent answers an owner's question about the store using Gemini
// with tool access to the live inventory and sales records.
func RunAgent(db *gorm.DB, userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a wholesale store POS.

	RULES:
	1. UPDATE: If a user asks to update a product price by NAME (e.g. "Update the flour price"), you must NOT ask them for the ID. Instead:
	   - Call 'check_inventory' to find the ID.
	   - Call 'update_product_price' using that ID.

	2. READ: If a user asks for PRICE, COST, STOCK, SKU or DETAILS of a product:
	   - You MUST call 'check_inventory' to get the full list.
	   - Then read the JSON to find the specific item and answer the user.

	3. RESTOCK: If the user asks what is running low or what to reorder, use 'get_low_stock'.

	4. SALES: If the user asks for sales/revenue, use 'get_sales_report'.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list. Use this to find ANY product details like ID, Name, SKU, Selling Price, Purchase Price or Stock.",
				},
				{
					Name:        "get_low_stock",
					Description: "List products whose stock is at or below their minimum stock level.",
				},
				{
					Name:        "update_product_price",
					Description: "Update the selling price of a specific product using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"product_id": {Type: genai.TypeInteger, Description: "ID of the product"},
							"new_price":  {Type: genai.TypeNumber, Description: "New selling price"},
						},
						Required: []string{"product_id", "new_price"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return executeInventory(ctx, db, session)
			case "get_low_stock":
				return executeLowStock(ctx, db, session)
			case "update_product_price":
				return executeUpdatePrice(ctx, db, session, funcCall), nil
			case "get_sales_report":
				return executeSalesReport(ctx, db, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

// SimpleProduct is the trimmed product view handed to the model
type SimpleProduct struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
}

func executeInventory(ctx context.Context, db *gorm.DB, session *genai.ChatSession) (string, error) {
	var products []models.Product
	db.Find(&products)

	simpleList := make([]SimpleProduct, 0, len(products))
	for _, p := range products {
		simpleList = append(simpleList, SimpleProduct{
			ID:       p.ID,
			Name:     p.Name,
			SKU:      p.SKU,
			Stock:    p.Stock,
			MinStock: p.MinStock,
			Price:    p.SellingPrice,
			Cost:     p.PurchasePrice,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}

	return handleRecursiveToolCalls(ctx, db, session, finalResp), nil
}

func executeLowStock(ctx context.Context, db *gorm.DB, session *genai.ChatSession) (string, error) {
	var products []models.Product
	db.Where("stock <= min_stock").Find(&products)

	simpleList := make([]SimpleProduct, 0, len(products))
	for _, p := range products {
		simpleList = append(simpleList, SimpleProduct{
			ID: p.ID, Name: p.Name, SKU: p.SKU,
			Stock: p.Stock, MinStock: p.MinStock,
			Price: p.SellingPrice, Cost: p.PurchasePrice,
		})
	}
	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "get_low_stock",
		Response: map[string]interface{}{"low_stock": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}

	return printResponse(finalResp), nil
}

// handleRecursiveToolCalls lets the model chain a lookup into an update
// (find the ID via inventory, then change the price).
func handleRecursiveToolCalls(ctx context.Context, db *gorm.DB, session *genai.ChatSession, resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_product_price" {
				return executeUpdatePrice(ctx, db, session, funcCall)
			}
		}
	}
	return printResponse(resp)
}

func executeUpdatePrice(ctx context.Context, db *gorm.DB, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	productID := int(args["product_id"].(float64))
	newPrice := args["new_price"].(float64)

	result := db.Model(&models.Product{}).Where("id = ?", productID).Update("selling_price", newPrice)

	msg := "Success"
	if result.RowsAffected == 0 {
		msg = "Product ID not found"
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_product_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	return printResponse(finalResp)
}

func executeSalesReport(ctx context.Context, db *gorm.DB, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr := args["start_date"].(string)
	endStr := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.SalesInRange(db, start, end)
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue,
			"sales_count": report.TotalCount,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
