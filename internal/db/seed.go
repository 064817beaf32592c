package db

import (
	"log/slog"

	"github.com/canvascartel/crm-backend/models"
	"gorm.io/gorm"
)

// Seed loads sample data on an empty database. Money values are in paise.
// A database that already has leads is left untouched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Lead{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("database already has data, skipping seed")
		return nil
	}

	slog.Info("seeding database with sample data")

	leads := []models.Lead{
		{Name: "Rajesh Kumar", Email: "rajesh@techstartup.in", Phone: "+91 9876543210", Company: "TechStartup India", Source: "website", Status: "new", Value: 5000000, Notes: "Interested in website development and social media marketing"},
		{Name: "Priya Sharma", Email: "priya@fashionbrand.com", Phone: "+91 9123456789", Company: "Fashion Forward", Source: "referral", Status: "contacted", Value: 7500000, Notes: "Looking for complete brand identity and advertisement design"},
		{Name: "Amit Patel", Email: "amit@foodchain.in", Phone: "+91 8765432109", Company: "Spice Route Restaurants", Source: "social_media", Status: "qualified", Value: 12000000, Notes: "Multi-location restaurant chain needs full marketing strategy"},
		{Name: "Sneha Reddy", Email: "sneha@edtech.co", Phone: "+91 7654321098", Company: "EduBright", Source: "email", Status: "proposal", Value: 20000000, Notes: "EdTech startup needs video production and marketing automation"},
		{Name: "Vikram Singh", Email: "vikram@realestate.in", Phone: "+91 6543210987", Company: "Skyline Properties", Source: "manual", Status: "negotiation", Value: 35000000, Notes: "Real estate developer needs comprehensive digital marketing"},
	}
	for i := range leads {
		if err := db.Create(&leads[i]).Error; err != nil {
			return err
		}
	}

	contacts := []models.Contact{
		{Name: "Ananya Desai", Email: "ananya@designstudio.com", Phone: "+91 9988776655", Company: "Design Studio", Title: "Creative Director"},
		{Name: "Karthik Menon", Email: "karthik@mediahouse.in", Phone: "+91 8877665544", Company: "Media House", Title: "Marketing Manager"},
		{Name: "Neha Gupta", Email: "neha@ecommerce.in", Phone: "+91 7766554433", Company: "ShopEase", Title: "CEO"},
	}
	for i := range contacts {
		if err := db.Create(&contacts[i]).Error; err != nil {
			return err
		}
	}

	deals := []models.Deal{
		{Title: "TechStartup Website Redesign", Value: 5000000, Stage: "new_lead", Probability: 20, ExpectedCloseDate: "2026-03-15", Notes: "Initial consultation done"},
		{Title: "Fashion Forward Brand Campaign", Value: 7500000, Stage: "contacted", Probability: 40, ExpectedCloseDate: "2026-03-20", Notes: "Sent portfolio samples"},
		{Title: "Spice Route Marketing Package", Value: 12000000, Stage: "proposal", Probability: 60, ExpectedCloseDate: "2026-04-01", Notes: "Proposal sent and under review"},
		{Title: "EduBright Video Series", Value: 20000000, Stage: "negotiation", Probability: 75, ExpectedCloseDate: "2026-04-15", Notes: "Negotiating scope and timeline"},
		{Title: "Skyline Digital Campaign", Value: 35000000, Stage: "won", Probability: 100, ExpectedCloseDate: "2026-02-28", Notes: "Contract signed, project started"},
	}
	for i := range deals {
		if err := db.Create(&deals[i]).Error; err != nil {
			return err
		}
	}

	callLogs := []models.CallLog{
		{LeadID: leads[0].ID, CalledBy: "Sales Team", Outcome: "picked_up", Duration: "10 min", Notes: "Discussed website requirements"},
		{LeadID: leads[1].ID, CalledBy: "Account Manager", Outcome: "interested", Duration: "15 min", Notes: "Very interested in ad design services"},
		{LeadID: leads[2].ID, CalledBy: "Sales Team", Outcome: "schedule_call", Duration: "5 min", Notes: "Asked to call back next week", ScheduledAt: "2026-03-01T10:00"},
		{LeadID: leads[3].ID, CalledBy: "Project Lead", Outcome: "call_later", Duration: "3 min", Notes: "In a meeting, call after 4pm"},
		{LeadID: leads[4].ID, CalledBy: "Sales Team", Outcome: "not_interested", Duration: "2 min", Notes: "Already has an agency"},
	}
	for i := range callLogs {
		if err := db.Create(&callLogs[i]).Error; err != nil {
			return err
		}
	}

	tasks := []models.Task{
		{Title: "Prepare proposal for Spice Route", Description: "Create detailed marketing proposal with timeline and budget", Status: "pending", Priority: "high", AssignedTo: "Design Team", DueDate: "2026-03-05"},
		{Title: "Follow up with Fashion Forward", Description: "Send portfolio and schedule meeting", Status: "in_progress", Priority: "medium", AssignedTo: "Sales Team", DueDate: "2026-03-03"},
		{Title: "Create social media content calendar", Description: "Monthly content plan for March", Status: "pending", Priority: "medium", AssignedTo: "Content Team", DueDate: "2026-03-01"},
		{Title: "Review Skyline project deliverables", Description: "Check first batch of creatives", Status: "completed", Priority: "high", AssignedTo: "Creative Director", DueDate: "2026-02-25"},
	}
	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			return err
		}
	}

	activities := []models.Activity{
		{Type: "lead_created", Description: "New lead: Rajesh Kumar from TechStartup India", EntityType: "lead", EntityID: leads[0].ID},
		{Type: "deal_created", Description: "New deal: Skyline Digital Campaign (₹3,50,000.00)", EntityType: "deal"},
		{Type: "call_logged", Description: "Call with Priya Sharma - Interested in services", EntityType: "call_log"},
		{Type: "task_completed", Description: "Completed: Review Skyline project deliverables", EntityType: "task"},
		{Type: "lead_created_webhook", Description: "Lead created via n8n automation", EntityType: "lead"},
	}
	for i := range activities {
		if err := db.Create(&activities[i]).Error; err != nil {
			return err
		}
	}

	webhook := models.Webhook{Name: "n8n Lead Capture"}
	if err := db.Create(&webhook).Error; err != nil {
		return err
	}

	slog.Info("database seeded successfully")
	return nil
}
