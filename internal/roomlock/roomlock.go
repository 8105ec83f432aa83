package roomlock

import "sync"

// Keyed serializa a criação de agendamentos por sala: a validação de
// conflito lê o banco antes de gravar, e duas requisições simultâneas
// para a mesma sala não podem ambas enxergar "livre".
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

func (k *Keyed) Lock(room string) {
	k.get(room).Lock()
}

func (k *Keyed) Unlock(room string) {
	k.get(room).Unlock()
}

func (k *Keyed) get(room string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if m, ok := k.locks[room]; ok {
		return m
	}
	m := &sync.Mutex{}
	k.locks[room] = m
	return m
}
