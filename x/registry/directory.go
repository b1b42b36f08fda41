package registry

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/orm"
)

const packageName = "registry"

// Directory is the module name directory. Every module is stored twice,
// once by name and once by address.
type Directory struct {
	byName   orm.ModelBucket
	byModule orm.ModelBucket
}

// NewDirectory returns a directory backed by the "regname" and
// "regmodule" buckets.
func NewDirectory() *Directory {
	return &Directory{
		byName:   orm.NewModelBucket("regname", &Entry{}),
		byModule: orm.NewModelBucket("regmodule", &Entry{}),
	}
}

// Register binds name to module. Only the directory admin can register.
// Both the name and the module must not be registered yet.
func (d *Directory) Register(ctx vault.Context, db vault.KVStore, caller, module vault.Address, name string) error {
	if err := d.authorize(db, caller); err != nil {
		return err
	}
	if err := d.put(db, &Entry{Name: name, Module: module}); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "module_registered", "name", name, "module", module)
	return nil
}

// Deregister removes the module registered under name. Accounts that
// already installed the module are not affected, the module can only no
// longer be installed.
func (d *Directory) Deregister(ctx vault.Context, db vault.KVStore, caller vault.Address, name string) error {
	if err := d.authorize(db, caller); err != nil {
		return err
	}
	var e Entry
	if err := d.byName.One(db, []byte(name), &e); err != nil {
		return errors.Wrapf(err, "module %q", name)
	}
	if err := d.byName.Delete(db, []byte(name)); err != nil {
		return errors.Wrap(err, "delete name")
	}
	if err := d.byModule.Delete(db, e.Module); err != nil {
		return errors.Wrap(err, "delete module")
	}
	vault.EmitEvent(ctx, "module_deregistered", "name", name, "module", e.Module)
	return nil
}

// Lookup returns the address of the module registered under name.
func (d *Directory) Lookup(db vault.ReadOnlyKVStore, name string) (vault.Address, error) {
	var e Entry
	if err := d.byName.One(db, []byte(name), &e); err != nil {
		return nil, errors.Wrapf(err, "module %q", name)
	}
	return e.Module, nil
}

// NameOf returns the name the module is registered under.
func (d *Directory) NameOf(db vault.ReadOnlyKVStore, module vault.Address) (string, error) {
	var e Entry
	if err := d.byModule.One(db, module, &e); err != nil {
		return "", errors.Wrapf(err, "module %s", module)
	}
	return e.Name, nil
}

// IsRegistered returns true if module is present in the directory.
func (d *Directory) IsRegistered(db vault.ReadOnlyKVStore, module vault.Address) (bool, error) {
	if len(module) == 0 {
		return false, nil
	}
	switch err := d.byModule.Has(db, module); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// UpdateConfiguration replaces the directory configuration. Only the
// current admin can do this.
func (d *Directory) UpdateConfiguration(ctx vault.Context, db vault.KVStore, caller vault.Address, next *Configuration) error {
	if err := gconf.Update(db, packageName, caller, &Configuration{}, next); err != nil {
		return err
	}
	vault.EmitEvent(ctx, "registry_configured", "admin", next.Admin)
	return nil
}

func (d *Directory) authorize(db vault.ReadOnlyKVStore, caller vault.Address) error {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return errors.Wrap(err, "load configuration")
	}
	if !conf.Admin.Equals(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the directory admin", caller)
	}
	return nil
}

func (d *Directory) put(db vault.KVStore, e *Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := d.byName.Has(db, []byte(e.Name)); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "name %q", e.Name)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	if err := d.byModule.Has(db, e.Module); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "module %s", e.Module)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	if err := d.byName.Put(db, []byte(e.Name), e); err != nil {
		return err
	}
	return d.byModule.Put(db, e.Module, e)
}
