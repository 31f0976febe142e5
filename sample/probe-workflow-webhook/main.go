package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/foozbat/integrations-demo/internal/entity"
	"github.com/foozbat/integrations-demo/internal/infra/webhook"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	url := os.Getenv("WORKFLOW_WEBHOOK_URL")
	if url == "" {
		url = os.Getenv("AZURE_LOGIC_APP_URL")
	}
	if url == "" {
		log.Fatal("❌ WORKFLOW_WEBHOOK_URL (ou AZURE_LOGIC_APP_URL) deve estar configurado no .env")
	}

	lead := entity.NewLead("Joao", "Teste da Silva", "joao.teste@email.com", "+556199767638", "pro")
	lead.ID = 1
	lead.CreatedAt = time.Now().UTC()
	lead.UpdatedAt = lead.CreatedAt

	fmt.Println("🔄 Enviando lead de teste para o workflow...")
	fmt.Printf("📋 Dados:\n")
	fmt.Printf("   Nome: %s %s\n", lead.FirstName, lead.LastName)
	fmt.Printf("   Email: %s\n", lead.Email)
	fmt.Printf("   Plano: %s\n", lead.Plan)
	fmt.Printf("   Correlation ID: %s\n\n", lead.CorrelationID)

	dispatcher := webhook.NewDispatcher(webhook.Options{})
	outcome := <-dispatcher.Dispatch(context.Background(), webhook.DeliveryRequest{
		URL:           url,
		Payload:       lead,
		CorrelationID: lead.CorrelationID,
		Timeout:       30 * time.Second,
	})

	if !outcome.Success {
		log.Fatalf("❌ Entrega falhou (status %d, %s): %v", outcome.StatusCode, outcome.Duration, outcome.Err)
	}

	fmt.Printf("✅ Workflow respondeu %d em %s\n", outcome.StatusCode, outcome.Duration.Round(time.Millisecond))
	fmt.Printf(" Procure no CRM pelo external_contact_id %s\n", lead.CorrelationID)
}
