package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if !hub.clients[client] {
		t.Fatal("client not registered")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)

	// Register client
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	// Unregister client
	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)
	client3 := mockClient(hub)

	// Register all clients
	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	// Broadcast event
	testPayload := json.RawMessage(`{"invoice_number":"INV-000042"}`)
	event := Event{
		Type:    "sale.created",
		Payload: testPayload,
	}
	hub.Broadcast(event)

	// All three clients should receive the message
	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "sale.created" {
				t.Errorf("client%d: expected type 'sale.created', got '%s'", i+1, received.Type)
			}
			if string(received.Payload) != string(testPayload) {
				t.Errorf("client%d: expected payload '%s', got '%s'", i+1, testPayload, received.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestUnregisteredClientDoesNotReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	// Drop client2 before broadcasting
	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	event := Event{
		Type:    "sale.deleted",
		Payload: json.RawMessage(`{"id":"abc"}`),
	}
	hub.Broadcast(event)

	select {
	case <-client1.send:
		// Expected
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client1 did not receive message")
	}

	// client2's send channel was closed by unregister; a closed channel
	// yields the zero value immediately, so check for that.
	select {
	case msg, ok := <-client2.send:
		if ok && msg != nil {
			t.Fatal("client2 should not have received message after unregister")
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventSerialization(t *testing.T) {
	testCases := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{
			name: "sale created event",
			event: Event{
				Type:    "sale.created",
				Payload: json.RawMessage(`{"id":"abc","total_amount":"59500.00"}`),
			},
			wantErr: false,
		},
		{
			name: "sale status changed event",
			event: Event{
				Type:    "sale.status_changed",
				Payload: json.RawMessage(`{"id":"def","status":"CANCELLED"}`),
			},
			wantErr: false,
		},
		{
			name: "sale deleted event",
			event: Event{
				Type:    "sale.deleted",
				Payload: json.RawMessage(`{"id":"ghi"}`),
			},
			wantErr: false,
		},
		{
			name: "low stock event",
			event: Event{
				Type:    "product.low_stock",
				Payload: json.RawMessage(`{"product_id":"jkl","stock":2,"min_stock":5}`),
			},
			wantErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.event)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Marshal error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}

			// Verify we can unmarshal back
			var decoded Event
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if decoded.Type != tc.event.Type {
				t.Errorf("Type mismatch: got %s, want %s", decoded.Type, tc.event.Type)
			}
			if string(decoded.Payload) != string(tc.event.Payload) {
				t.Errorf("Payload mismatch: got %s, want %s", decoded.Payload, tc.event.Payload)
			}
		})
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// A client with a zero-capacity send buffer never keeps up
	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(Event{
		Type:    "sale.created",
		Payload: json.RawMessage(`{"id":"abc"}`),
	})
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[slow] {
		t.Fatal("slow client should have been dropped")
	}
}
