package ui

import (
	"os"
	"testing"
)

func TestLoadSheetCmd_Writable(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(t *testing.T, path string)
		wantErr  bool
		writable bool
	}{
		{
			name:     "missing file",
			prepare:  func(t *testing.T, path string) {},
			writable: true,
		},
		{
			name: "corrupt file is moved aside",
			prepare: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr:  true,
			writable: true,
		},
		{
			name: "unreadable file stays in place",
			prepare: func(t *testing.T, path string) {
				if err := os.MkdirAll(path, 0700); err != nil {
					t.Fatal(err)
				}
			},
			wantErr:  true,
			writable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			tt.prepare(t, store.SheetPath(testNow))

			msg, ok := loadSheetCmd(store, testNow)().(sheetLoadedMsg)
			if !ok {
				t.Fatal("loadSheetCmd did not return sheetLoadedMsg")
			}
			if (msg.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", msg.err, tt.wantErr)
			}
			if msg.writable != tt.writable {
				t.Errorf("writable = %v, want %v", msg.writable, tt.writable)
			}
		})
	}
}

func TestSaveSheetCmd(t *testing.T) {
	store := createTestStorage(t)

	msg, ok := saveSheetCmd(store, testNow, points(t, "09:00 start", "10:00 dev"), 7, true)().(sheetSavedMsg)
	if !ok {
		t.Fatal("saveSheetCmd did not return sheetSavedMsg")
	}
	if msg.err != nil || msg.rev != 7 || !msg.quit || msg.count != 2 {
		t.Errorf("msg = %+v", msg)
	}

	saved, err := store.LoadSheet(testNow)
	if err != nil || len(saved) != 2 {
		t.Errorf("saved = %v, %v", saved, err)
	}
}
