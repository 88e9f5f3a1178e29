package model

import "testing"

func TestCloneAppendsSuffixAndNewID(t *testing.T) {
	t.Parallel()

	task := NewTask("Gym", "Leg day", "2024-01-01", []string{"Health/Fitness"})
	clone := task.Clone()

	if clone.Name != "Gym (Copy)" {
		t.Fatalf("expected copy suffix, got %q", clone.Name)
	}
	if clone.ID == task.ID || clone.ID == "" {
		t.Fatalf("clone needs a fresh id")
	}
	if clone.Description != task.Description || clone.Deadline != task.Deadline {
		t.Fatalf("clone must copy fields: %+v", clone)
	}

	// Category slices must not alias.
	clone.Categories[0] = "Home"
	if task.Categories[0] != "Health/Fitness" {
		t.Fatalf("clone categories alias the original")
	}
}

func TestCloneOfCloneStacksSuffix(t *testing.T) {
	t.Parallel()

	task := NewTask("Gym", "d", "x", []string{"Home"})
	twice := task.Clone().Clone()
	if twice.Name != "Gym (Copy) (Copy)" {
		t.Fatalf("suffixes stack without uniqueness enforcement, got %q", twice.Name)
	}
}

func TestClampCategories(t *testing.T) {
	t.Parallel()

	five := []string{"Home", "Work", "Personal", "Health/Fitness", "Education"}
	got := ClampCategories(five)
	if len(got) != MaxCategories {
		t.Fatalf("expected %d, got %v", MaxCategories, got)
	}
	for i := 0; i < MaxCategories; i++ {
		if got[i] != five[i] {
			t.Fatalf("clamp keeps the first picks in order, got %v", got)
		}
	}

	one := ClampCategories([]string{"Home"})
	if len(one) != 1 {
		t.Fatalf("short lists pass through, got %v", one)
	}
}

func TestValidCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Fatalf("%q should be valid", c)
		}
	}
	for _, c := range []string{"", "home", "Chores"} {
		if ValidCategory(c) {
			t.Fatalf("%q should be invalid", c)
		}
	}
}
